// Package docs registers the OpenAPI document served under /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a normal user and receive a token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}}
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error or wrong current password"}}
            }
        },
        "/auth/verify": {
            "get": {
                "tags": ["auth"],
                "summary": "Validate the bearer token",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Token malformed or expired"}}
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "name", "type": "string"},
                    {"in": "query", "name": "email", "type": "string"},
                    {"in": "query", "name": "address", "type": "string"},
                    {"in": "query", "name": "role", "type": "string", "enum": ["admin", "user", "store_owner"]},
                    {"in": "query", "name": "sortBy", "type": "string", "enum": ["name", "email", "address", "role", "created_at"]},
                    {"in": "query", "name": "sortOrder", "type": "string", "enum": ["ASC", "DESC"]}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "tags": ["users"],
                "summary": "Create a user of any role (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}
            }
        },
        "/users/stats": {
            "get": {
                "tags": ["users"],
                "summary": "Dashboard counts (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "User detail with owned store (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user and their ratings (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Self deletion"}, "404": {"description": "Not found"}}
            }
        },
        "/users/{id}/ratings": {
            "get": {
                "tags": ["users"],
                "summary": "Ratings written by a user (self or admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not owner"}}
            }
        },
        "/stores": {
            "get": {
                "tags": ["stores"],
                "summary": "List stores with the caller's own rating",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "name", "type": "string"},
                    {"in": "query", "name": "email", "type": "string"},
                    {"in": "query", "name": "address", "type": "string"},
                    {"in": "query", "name": "sortBy", "type": "string", "enum": ["name", "email", "address", "average_rating", "created_at"]},
                    {"in": "query", "name": "sortOrder", "type": "string", "enum": ["ASC", "DESC"]}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["stores"],
                "summary": "Create a store, optionally assigning an owner by email (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStoreRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Owner missing or not a store owner"}, "409": {"description": "Conflict"}}
            }
        },
        "/stores/{id}": {
            "get": {
                "tags": ["stores"],
                "summary": "Store detail with ratings",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["stores"],
                "summary": "Update a store (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["stores"],
                "summary": "Delete a store and its ratings (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/stores/dashboard/my-store": {
            "get": {
                "tags": ["stores"],
                "summary": "Owner dashboard: the caller's store and its ratings",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Owner has no store"}}
            }
        },
        "/ratings/store/{storeId}": {
            "get": {
                "tags": ["ratings"],
                "summary": "Ratings of a store with its aggregate",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "storeId", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Store not found"}}
            },
            "post": {
                "tags": ["ratings"],
                "summary": "Submit or replace the caller's rating",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "storeId", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RatingRequest"}}
                ],
                "responses": {"200": {"description": "Replaced"}, "201": {"description": "Created"}, "404": {"description": "Store not found"}}
            }
        },
        "/ratings/store/{storeId}/my-rating": {
            "get": {
                "tags": ["ratings"],
                "summary": "The caller's rating for a store",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "storeId", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Store or rating not found"}}
            }
        },
        "/ratings/{id}": {
            "put": {
                "tags": ["ratings"],
                "summary": "Change the value of the caller's rating",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RatingRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not owner"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["ratings"],
                "summary": "Delete the caller's rating",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not owner"}, "404": {"description": "Not found"}}
            }
        },
        "/ratings/my-ratings": {
            "get": {
                "tags": ["ratings"],
                "summary": "The caller's ratings, most recently changed first",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/healthz": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness and storage reachability",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Storage unreachable"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "object", "properties": {"field": {"type": "string"}, "message": {"type": "string"}}}}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "address": {"type": "string"}}
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {"current_password": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "CreateUserRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "address": {"type": "string"}, "role": {"type": "string"}}
        },
        "CreateStoreRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "address": {"type": "string"}, "owner_email": {"type": "string"}}
        },
        "RatingRequest": {
            "type": "object",
            "properties": {"rating": {"description": "integer 1-5, or a numeric string", "type": "integer", "minimum": 1, "maximum": 5}}
        },
        "AuthResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"type": "object"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Store Rating API",
	Description:      "Users rate stores, owners follow their store's ratings and admins manage both.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
