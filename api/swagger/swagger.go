package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Barangay Health Records API",
        "description": "Resident health record keeping, review queue and analytics for a barangay health center",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login and session state"},
        {"name": "Residents", "description": "Resident roster management"},
        {"name": "Health records", "description": "Clinical visit records"},
        {"name": "Pending residents", "description": "Self-registration review queue"},
        {"name": "Analytics", "description": "Derived community statistics"},
        {"name": "Activity", "description": "Audit trail"},
        {"name": "Exports", "description": "Asynchronous CSV/PDF exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Inactivity session state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionState"}}
                }
            }
        },
        "/residents": {
            "get": {
                "tags": ["Residents"],
                "summary": "List residents",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "street", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Residents"],
                "summary": "Register a resident with their first health record",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterResidentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/residents/{id}": {
            "get": {
                "tags": ["Residents"],
                "summary": "Get one resident",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Resident"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Residents"],
                "summary": "Replace a resident's identity fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Resident"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Resident"}}
                }
            }
        },
        "/health-records": {
            "get": {
                "tags": ["Health records"],
                "summary": "List health records",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Health records"],
                "summary": "Add a follow-up visit record for an existing resident",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/health-records/{id}": {
            "get": {
                "tags": ["Health records"],
                "summary": "Get one health record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthRecord"}}
                }
            },
            "put": {
                "tags": ["Health records"],
                "summary": "Replace a record's clinical fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HealthRecord"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthRecord"}}
                }
            },
            "delete": {
                "tags": ["Health records"],
                "summary": "Delete a record and cascade to its resident",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "admin", "in": "query", "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/pending-residents": {
            "get": {
                "tags": ["Pending residents"],
                "summary": "List pending submissions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Pending residents"],
                "summary": "Submit a self-registration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PendingResident"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/PendingResident"}}
                }
            }
        },
        "/pending-residents/accept/{id}": {
            "post": {
                "tags": ["Pending residents"],
                "summary": "Approve a pending submission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthRecord"}}
                }
            }
        },
        "/pending-residents/remove/{id}": {
            "delete": {
                "tags": ["Pending residents"],
                "summary": "Reject a pending submission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "admin", "in": "query", "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Rejected"}
                }
            }
        },
        "/analytics/summary": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Community health statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/heatmap": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-street severity heatmap",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activity-logs": {
            "get": {
                "tags": ["Activity"],
                "summary": "Recent activity log entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue an export job",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SessionState": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["active", "warning", "expired"]},
                "idle_seconds": {"type": "integer"},
                "countdown_seconds": {"type": "integer"}
            }
        },
        "Resident": {
            "type": "object",
            "properties": {
                "resident_id": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_name": {"type": "string"},
                "last_name": {"type": "string"},
                "suffix": {"type": "string"},
                "sex": {"type": "string"},
                "civil_status": {"type": "string"},
                "birthdate": {"type": "string"},
                "contact_number": {"type": "string"},
                "street": {"type": "string"},
                "barangay": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "RegisterResidentRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "sex": {"type": "string"},
                "birthdate": {"type": "string"},
                "street": {"type": "string"},
                "is_pwd": {"type": "boolean"},
                "blood_pressure": {"type": "string"},
                "weight_kg": {"type": "number"},
                "height_cm": {"type": "number"},
                "health_condition": {"type": "string"},
                "diagnosis": {"type": "string"},
                "allergies": {"type": "string"},
                "visit_date": {"type": "string"},
                "remarks": {"type": "string"}
            }
        },
        "HealthRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "resident_id": {"type": "string"},
                "is_pwd": {"type": "boolean"},
                "blood_pressure": {"type": "string"},
                "weight_kg": {"type": "number"},
                "height_cm": {"type": "number"},
                "bmi": {"type": "number"},
                "nutrition_status": {"type": "string"},
                "health_condition": {"type": "string"},
                "diagnosis": {"type": "string"},
                "allergies": {"type": "string"},
                "visit_date": {"type": "string"},
                "remarks": {"type": "string"},
                "recorded_by": {"type": "string"},
                "registered_at": {"type": "string"}
            }
        },
        "PendingResident": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "resident_id": {"type": "string"},
                "is_pwd": {"type": "boolean"},
                "height_cm": {"type": "number"},
                "weight_kg": {"type": "number"},
                "bmi": {"type": "number"},
                "health_condition": {"type": "string"},
                "allergies": {"type": "string"},
                "verified_by": {"type": "string"},
                "submitted_at": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
