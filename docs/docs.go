// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/router/quote": {
            "get": {
                "tags": ["router"],
                "summary": "Quote a swap between two router token indexes",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "tokenIndexFrom", "in": "query", "required": true},
                    {"type": "integer", "name": "tokenIndexTo", "in": "query", "required": true},
                    {"type": "string", "name": "amountIn", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/router/best-path": {
            "get": {
                "tags": ["router"],
                "summary": "Find the best path between two tokens",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tokenIn", "in": "query", "required": true},
                    {"type": "string", "name": "tokenOut", "in": "query", "required": true},
                    {"type": "string", "name": "amountIn", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/router/connected-tokens": {
            "get": {
                "tags": ["router"],
                "summary": "Report which tokens can reach tokenOut",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "comma separated addresses", "name": "tokensIn", "in": "query", "required": true},
                    {"type": "string", "name": "tokenOut", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/router/nodes": {
            "get": {
                "tags": ["router"],
                "summary": "List the router tree nodes",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/router/swap": {
            "post": {
                "tags": ["router"],
                "summary": "Swap on the in-process ledger",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/router/pools": {
            "post": {
                "tags": ["router"],
                "summary": "Attach a pool to a tree node",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-Caller", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/router/store-state": {
            "post": {
                "tags": ["router"],
                "summary": "Write the router tree to disk",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pools": {
            "get": {
                "tags": ["pools"],
                "summary": "List registered pools",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "comma separated addresses", "name": "addresses", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pools/{address}/quote": {
            "get": {
                "tags": ["pools"],
                "summary": "Quote a single pool",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "address", "in": "path", "required": true},
                    {"type": "integer", "name": "tokenIndexFrom", "in": "query", "required": true},
                    {"type": "integer", "name": "tokenIndexTo", "in": "query", "required": true},
                    {"type": "string", "name": "amountIn", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/bridge/origin-amount-out": {
            "get": {
                "tags": ["bridge"],
                "summary": "Quote origin swaps into bridge tokens",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "tokenIn", "in": "query", "required": true},
                    {"type": "string", "description": "comma separated bridge token symbols", "name": "symbols", "in": "query", "required": true},
                    {"type": "string", "name": "amountIn", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/destination-amount-out": {
            "post": {
                "tags": ["bridge"],
                "summary": "Quote destination swaps from bridge tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/request/format": {
            "post": {
                "tags": ["bridge"],
                "summary": "Format a bridge request",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/request/decode": {
            "post": {
                "tags": ["bridge"],
                "summary": "Decode a formatted bridge request",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/request/id": {
            "get": {
                "tags": ["bridge"],
                "summary": "Compute a request ID",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "destinationDomain", "in": "query", "required": true},
                    {"type": "integer", "name": "version", "in": "query", "required": true},
                    {"type": "string", "name": "formattedRequest", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/tokens": {
            "get": {
                "tags": ["bridge"],
                "summary": "List bridge tokens",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["bridge"],
                "summary": "Add a bridge token",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-Caller", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            },
            "delete": {
                "tags": ["bridge"],
                "summary": "Remove a bridge token",
                "parameters": [
                    {"type": "string", "name": "X-Caller", "in": "header", "required": true},
                    {"type": "string", "name": "token", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/bridge/tokens/fee": {
            "put": {
                "tags": ["bridge"],
                "summary": "Set the fee structure of a bridge token",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-Caller", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/bridge/remote-domains": {
            "get": {
                "tags": ["bridge"],
                "summary": "List remote domain configs",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["bridge"],
                "summary": "Set a remote domain config",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-Caller", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/bridge/send": {
            "post": {
                "tags": ["bridge"],
                "summary": "Swap on origin and bridge",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/receive": {
            "post": {
                "tags": ["bridge"],
                "summary": "Fulfill a bridge request on destination",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/fee": {
            "get": {
                "tags": ["bridge"],
                "summary": "Calculate the bridge fee",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "token", "in": "query", "required": true},
                    {"type": "string", "name": "amount", "in": "query", "required": true},
                    {"type": "boolean", "name": "isSwap", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/bridge/messages/{nonce}": {
            "get": {
                "tags": ["bridge"],
                "summary": "Get an attested burn message",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "nonce", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/bridge/requests/{id}": {
            "get": {
                "tags": ["bridge"],
                "summary": "Get the records of a request",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/healthcheck": {
            "get": {
                "tags": ["system"],
                "summary": "Report service health",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Synapse Bridge Router",
	Description:      "Swap routing and bridge quoting over in-process pools.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
