// Package docs registers the swagger document for the JSON endpoints.
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
        "/api/diagnostics": {
            "get": {
                "description": "Runs the connection or debug checks against the content API and returns the report. Failed checks are reported inside the report, not as an error status. Requires an admin session.",
                "produces": ["application/json"],
                "tags": ["diagnostics"],
                "summary": "Run backend diagnostics",
                "parameters": [
                    {"type": "string", "description": "connection (default) or debug", "name": "suite", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains the report", "schema": {"$ref": "#/definitions/controllers.DiagnosticsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/api/session/refresh": {
            "post": {
                "description": "Redeems the refresh token from the dc_refresh cookie (or the JSON body) for a new access token and a new refresh token, both set as cookies. A refresh token can be redeemed once.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Rotate the admin session tokens",
                "parameters": [
                    {"description": "Refresh token, when no cookie is sent", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/controllers.RefreshSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "data contains the user and the new expiry times", "schema": {"$ref": "#/definitions/controllers.RefreshSessionSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "data.status is ok", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.DiagnosticsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.DiagnosticsReport"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.RefreshSessionRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "controllers.RefreshSessionResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.AdminUser"},
                "access_expires_at": {"type": "string", "format": "date-time"},
                "refresh_expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "controllers.RefreshSessionSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.RefreshSessionResponse"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.AdminUser": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "is_staff": {"type": "boolean"}
            }
        },
        "domain.CheckResult": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "status": {"type": "string", "enum": ["PASS", "FAIL", "INFO"]},
                "http_status": {"type": "integer"},
                "duration_ms": {"type": "integer"},
                "error": {"type": "string"},
                "detail": {"type": "object", "additionalProperties": true}
            }
        },
        "domain.DiagnosticsReport": {
            "type": "object",
            "properties": {
                "suite": {"type": "string", "enum": ["connection", "debug"]},
                "api_url": {"type": "string"},
                "public_url": {"type": "string"},
                "environment": {"type": "string"},
                "started_at": {"type": "string", "format": "date-time"},
                "checks": {"type": "array", "items": {"$ref": "#/definitions/domain.CheckResult"}}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "DevCatalyst console API",
	Description:      "JSON endpoints of the DevCatalyst site: session refresh, diagnostics, and health.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
