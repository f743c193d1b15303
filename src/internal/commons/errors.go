package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateAccount = errors.New("Account already exists")
var ErrDuplicateTransaction = errors.New("Duplicate transaction")
var ErrInsufficientBalance = errors.New("Insufficient balance")

// ErrAccountNumberTaken signals a generated account number collided with an
// existing row; callers retry with a fresh number instead of failing the
// request.
var ErrAccountNumberTaken = errors.New("Account number already taken")
