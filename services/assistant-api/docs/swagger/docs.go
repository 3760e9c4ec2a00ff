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
        "/v1/assistant/assist": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Assistant"],
                "summary": "Assist a dealer",
                "description": "Classifies the message, runs the matching tool plan and returns the composed result.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/requests.AssistRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/assist.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/v1/deals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Deals"],
                "summary": "List recent deals",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/responses.DealResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/v1/deals/{deal_id}/artifacts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Deals"],
                "summary": "List deal artifacts",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "deal_id", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/responses.ArtifactResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/v1/quick-questions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["QuickQuestions"],
                "summary": "List quick questions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/responses.QuickQuestionResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["QuickQuestions"],
                "summary": "Create a quick question",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/requests.CreateQuickQuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.QuickQuestionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/v1/quick-questions/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["QuickQuestions"],
                "summary": "Delete a quick question",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.OKResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/v1/filters/options": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Filters"],
                "summary": "Filter options",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        },
        "/v1/filters/search": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Filters"],
                "summary": "Filtered listing search",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/requests.FilterSearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/responses.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "requests.AssistRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "deal_id": {"type": "integer", "example": 12},
                "message": {"type": "string", "example": "무사고 SUV 2000만원 이하 추천해줘"},
                "filters": {"type": "object"}
            }
        },
        "requests.CreateQuickQuestionRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string", "example": "쏘렌토 시세 요약해줘"}
            }
        },
        "requests.FilterSearchRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "SUV"},
                "filters": {"type": "object"},
                "top_k": {"type": "integer", "example": 50}
            }
        },
        "assist.Result": {
            "type": "object",
            "properties": {
                "intent": {"type": "string", "example": "recommend"},
                "used_tools": {"type": "array", "items": {"type": "string"}},
                "result": {"type": "object"}
            }
        },
        "responses.DealResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "customer_token": {"type": "string"},
                "status": {"type": "string"},
                "preference": {"type": "object"},
                "updated_at": {"type": "string"}
            }
        },
        "responses.ArtifactResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "deal_id": {"type": "integer"},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "object"},
                "created_at": {"type": "string"}
            }
        },
        "responses.QuickQuestionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "text": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "responses.OKResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
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
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dealer Assistant API",
	Description:      "Intent driven dealer assistant over the tool gateway",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
