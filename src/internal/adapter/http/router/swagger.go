package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Wallet Ledger Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Wallet Ledger Service",
    "description": "Single-account wallet ledger: account creation, balance lookup, debit/credit with idempotency, paginated transaction history.",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "channelAuth": {"type": "http", "scheme": "basic"}
    }
  },
  "security": [{"channelAuth": []}],
  "paths": {
    "/api/accounts": {
      "post": {
        "summary": "Create a wallet account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fullName", "emailId", "mobileNumber", "accountType"],
                "properties": {
                  "fullName": {"type": "string"},
                  "emailId": {"type": "string", "format": "email"},
                  "mobileNumber": {"type": "string", "pattern": "^[0-9]{10}$"},
                  "accountType": {"type": "string", "enum": ["SAVINGS", "CURRENT"]}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Account created"},
          "400": {"description": "Validation failed"},
          "409": {"description": "Account already exists with the same email or mobile"}
        }
      }
    },
    "/api/accounts/{accountNumber}": {
      "get": {
        "summary": "Fetch account balance",
        "parameters": [
          {"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Balance fetched"},
          "404": {"description": "Account does not exist"}
        }
      }
    },
    "/api/v1/transaction/debit": {
      "post": {
        "summary": "Debit an account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountNumber", "transactionId", "amount"],
                "properties": {
                  "accountNumber": {"type": "string"},
                  "transactionId": {"type": "string", "maxLength": 20},
                  "amount": {"type": "number", "minimum": 1}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Account debited"},
          "404": {"description": "Account does not exist"},
          "409": {"description": "Transaction already performed with this transactionId"},
          "422": {"description": "Insufficient funds"}
        }
      }
    },
    "/api/v1/transaction/credit": {
      "post": {
        "summary": "Credit an account",
        "responses": {
          "200": {"description": "Account credited"},
          "404": {"description": "Account does not exist"},
          "409": {"description": "Transaction already performed with this transactionId"}
        }
      }
    },
    "/api/v1/transaction/{accountNumber}": {
      "get": {
        "summary": "List transactions for an account",
        "parameters": [
          {"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "page", "in": "query", "schema": {"type": "integer", "minimum": 0, "default": 0}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 50, "default": 10}}
        ],
        "responses": {
          "200": {"description": "Transaction page, or an empty soft-success page"},
          "404": {"description": "Account does not exist"}
        }
      }
    }
  }
}`
