package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Leave Gateway",
        "description": "Builds and executes leave backend requests for the admin, teacher and student dashboards",
        "version": "0.2.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Descriptors", "description": "Request descriptors sent to the leave backend"},
        {"name": "Leave", "description": "Admin leave request listings"},
        {"name": "Auth", "description": "Post sign-in routing"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/descriptors/requests": {
            "get": {
                "tags": ["Descriptors"],
                "summary": "Describe the admin leave list request",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "enum": ["all", "teacher", "student"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved", "rejected", "cancelled", "all"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/leave/requests": {
            "get": {
                "tags": ["Leave"],
                "summary": "List leave requests for admins",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "enum": ["all", "teacher", "student"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "approved", "rejected", "cancelled", "all"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No caller bearer and no shared credential", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Leave backend failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "504": {"description": "Leave backend timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/redirect": {
            "get": {
                "tags": ["Auth"],
                "summary": "Dashboard to open after sign-in",
                "parameters": [
                    {"name": "Authorization", "in": "header", "type": "string"},
                    {"name": "token", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "DescriptorResponse": {
            "type": "object",
            "properties": {
                "method": {"type": "string"},
                "url": {"type": "string"},
                "headers": {"type": "object", "additionalProperties": {"type": "string"}},
                "authenticated": {"type": "boolean"},
                "route": {"type": "string"}
            }
        },
        "LeaveRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "requester_id": {"type": "string"},
                "requester_name": {"type": "string"},
                "requester_role": {"type": "string"},
                "type": {"type": "string"},
                "reason": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "status": {"type": "string"},
                "reviewed_by": {"type": "string"},
                "review_note": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "RedirectResponse": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
