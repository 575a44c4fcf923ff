// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate the template with `swag init -g cmd/server/main.go` after changing annotations.
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
        "/api/goals-per-worldcup": {
            "get": {
                "description": "Total goals and average goals per match for every edition, computed from match rows",
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Goals per World Cup",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/top-teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Top teams",
                "parameters": [
                    {"enum": ["wins", "goals", "titles"], "type": "string", "default": "wins", "description": "Ranking metric", "name": "metric", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Number of teams", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/goals-by-stage": {
            "get": {
                "description": "Average goals per match in group and knockout matches, per year and overall",
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Goals by stage",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/goals-by-continent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Goals by continent",
                "parameters": [
                    {"enum": ["host", "team"], "type": "string", "default": "host", "description": "Attribute goals to the host country or to each scoring team", "name": "basis", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/team-comparison": {
            "get": {
                "description": "Full records of two teams plus their head-to-head tally. Names are case-sensitive.",
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Team comparison",
                "parameters": [
                    {"type": "string", "default": "Brazil", "description": "First team", "name": "team1", "in": "query"},
                    {"type": "string", "default": "Germany", "description": "Second team", "name": "team2", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.Envelope"}},
                    "404": {"description": "Unknown team", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/matches-per-year": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Matches per year",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/api/available-teams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Available teams",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "models.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "insight": {"type": "string"},
                "metric": {"type": "string"},
                "error": {"type": "string"}
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
	Title:            "World Cup Stats API",
	Description:      "Read-only aggregation endpoints over FIFA World Cup match and tournament history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
