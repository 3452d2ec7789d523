// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/chouchef/main.go
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
        "/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "592": {"description": "Email address already in use", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/users/allUsers": {
            "get": {"produces": ["application/json"], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["users"], "summary": "Get a user",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Update a user",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"203": {"description": "Non-Authoritative Information"}, "403": {"description": "Forbidden"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"], "tags": ["users"], "summary": "Delete a user and its lists",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"202": {"description": "Accepted"}, "403": {"description": "Forbidden"}}
            }
        },
        "/users/{id}/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["users"], "summary": "Change password",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/foods": {
            "get": {"produces": ["application/json"], "tags": ["foods"], "summary": "List food items", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["foods"], "summary": "Create a food item", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/shops": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["application/json"], "tags": ["shops"], "summary": "List shopping lists", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"], "tags": ["shops"], "summary": "Create a shopping list", "responses": {"201": {"description": "Created"}}}
        },
        "/shops/{shopId}/add-foods": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["shops"], "summary": "Add foods to a list by name",
                "parameters": [{"type": "string", "description": "List ID", "name": "shopId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/shops/{id}/check-item": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["shops"], "summary": "Set checked items",
                "parameters": [{"type": "string", "description": "List ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/shops/{listId}/foods_in_shop/{foodId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["shops"], "summary": "Remove a food from a list",
                "parameters": [
                    {"type": "string", "description": "List ID", "name": "listId", "in": "path", "required": true},
                    {"type": "string", "description": "Food ID", "name": "foodId", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/detectText": {
            "post": {
                "consumes": ["multipart/form-data"], "produces": ["application/json"], "tags": ["media"], "summary": "Detect text in an image",
                "parameters": [{"type": "file", "description": "Image to read", "name": "image", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/mail": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["contact"], "summary": "Send a contact message", "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "api.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.registerRequest": {
            "type": "object", "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "user": {"type": "object"}}
        },
        "handler.loginRequest": {
            "type": "object", "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.loginResponse": {"type": "object", "properties": {"token": {"type": "string"}}}
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
	Title:            "Chouchef API",
	Description:      "Shopping lists backed by a shared food catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
