package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Trip Logistics API",
        "description": "Lodging calendar, transports and pickup coordination for group trips",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Trips", "description": "Trip lifecycle"},
        {"name": "Roster", "description": "People and rooms per trip"},
        {"name": "Assignments", "description": "Room bookings with checkout semantics"},
        {"name": "Transports", "description": "Arrivals and departures"},
        {"name": "Calendar", "description": "Month grid layout"},
        {"name": "Pickups", "description": "Pickup grouping and driver claims"},
        {"name": "Exports", "description": "Async CSV/PDF exports"},
        {"name": "Share", "description": "Read-only share links"}
    ],
    "paths": {
        "/trips": {
            "get": {
                "tags": ["Trips"],
                "summary": "List trips",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Trips"],
                "summary": "Create trip",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/trips/{id}": {
            "get": {
                "tags": ["Trips"],
                "summary": "Get trip detail",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Trips"],
                "summary": "Update trip",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Trips"],
                "summary": "Delete trip",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/trips/{id}/people": {
            "get": {
                "tags": ["Roster"],
                "summary": "List trip members",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Add a trip member",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/trips/{id}/rooms": {
            "get": {
                "tags": ["Roster"],
                "summary": "List trip rooms",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Roster"],
                "summary": "Add a room",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/trips/{id}/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List room assignments",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Book a person into a room",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid date range"}}
            }
        },
        "/trips/{id}/transports": {
            "get": {
                "tags": ["Transports"],
                "summary": "List transports",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Transports"],
                "summary": "Record an arrival or departure",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/trips/{id}/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month grid layout for a trip",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string", "description": "YYYY-MM"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/trips/{id}/pickup-groups": {
            "get": {
                "tags": ["Pickups"],
                "summary": "Open pickup groups",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "window", "in": "query", "type": "integer", "description": "Grouping window in minutes"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transports/{transportId}/claim": {
            "post": {
                "tags": ["Pickups"],
                "summary": "Claim a pending pickup",
                "parameters": [{"name": "transportId", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Already claimed"}
                }
            },
            "delete": {
                "tags": ["Pickups"],
                "summary": "Release a claimed pickup",
                "parameters": [{"name": "transportId", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No content"}}
            }
        },
        "/trips/{id}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Enqueue an export job",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"202": {"description": "Accepted"}}
            }
        },
        "/exports/{jobId}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [{"name": "jobId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports/{jobId}/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "parameters": [
                    {"name": "jobId", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "File"}, "403": {"description": "Invalid token"}}
            }
        },
        "/trips/{id}/share": {
            "post": {
                "tags": ["Share"],
                "summary": "Create a read-only share link",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/shared/{token}/calendar": {
            "get": {
                "tags": ["Share"],
                "summary": "Month grid through a share token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "410": {"description": "Link expired"}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
