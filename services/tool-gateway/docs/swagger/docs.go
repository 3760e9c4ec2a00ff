// Package swagger provides API documentation
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/tool/call": {
            "post": {
                "tags": ["Tools"],
                "summary": "Call a tool",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/requests.CallToolRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/tools": {
            "get": {
                "tags": ["Tools"],
                "summary": "List tools",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.ToolListResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Gateway health",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.HealthResponse"}}
                }
            }
        },
        "/v1/audit": {
            "get": {
                "tags": ["Audit"],
                "summary": "Recent audit events",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 50, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.AuditListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "requests.CallToolRequest": {
            "type": "object",
            "required": ["tool"],
            "properties": {
                "tool": {"type": "string", "example": "inventory.search_listings"},
                "args": {"type": "object"}
            }
        },
        "responses.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "category": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "responses.ToolListResponse": {
            "type": "object",
            "properties": {
                "tools": {"type": "array", "items": {"$ref": "#/definitions/responses.ToolResponse"}}
            }
        },
        "responses.ToolResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "upstream": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "responses.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "registry_size": {"type": "integer"}
            }
        },
        "responses.AuditListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "object"}},
                "limit": {"type": "integer"}
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
	Title:            "Tool Gateway API",
	Description:      "Routes, masks and audits dealer tool calls",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
