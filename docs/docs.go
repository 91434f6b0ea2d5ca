// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g main.go
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
        "/itineraries": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Builds a day by day Ireland itinerary for the given preferences. Omitted fields take their defaults.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Itineraries"],
                "summary": "Generate a travel plan",
                "parameters": [
                    {
                        "description": "Travel preferences",
                        "name": "preferences",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.UserPreferences"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TravelPlan"}},
                    "400": {"description": "Invalid preferences", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Catalogue unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/pois": {
            "get": {
                "description": "Returns catalogue entries matching the interests, optionally restricted to regions and special requirements",
                "produces": ["application/json"],
                "tags": ["Catalogue"],
                "summary": "Filter the POI catalogue",
                "parameters": [
                    {"type": "string", "description": "Comma separated interests", "name": "interests", "in": "query", "required": true},
                    {"type": "string", "description": "Comma separated regions", "name": "regions", "in": "query"},
                    {"type": "string", "description": "Comma separated special requirements", "name": "special", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid query", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Catalogue unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/tags": {
            "get": {
                "description": "Returns the numbered interest tags and the known regions. With select, only the chosen tags are returned.",
                "produces": ["application/json"],
                "tags": ["Tags"],
                "summary": "List interest tags",
                "parameters": [
                    {"type": "string", "description": "Tag numbers and ranges, e.g. 1,3-5", "name": "select", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid selection", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "types.UserPreferences": {
            "type": "object",
            "properties": {
                "interests": {"type": "array", "items": {"type": "string"}},
                "trip_duration": {"type": "integer"},
                "activities_per_day": {"type": "integer"},
                "pace": {"type": "string", "enum": ["slow", "moderate", "fast"]},
                "transportation": {"type": "string"},
                "budget": {"type": "string"},
                "regions": {"type": "array", "items": {"type": "string"}},
                "special_requirements": {"type": "array", "items": {"type": "string"}},
                "preferred_start_time": {"type": "string"},
                "preferred_end_time": {"type": "string"},
                "require_breaks": {"type": "boolean"}
            }
        },
        "types.Activity": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "timing": {"type": "string"}
            }
        },
        "types.DayPlan": {
            "type": "object",
            "properties": {
                "day_number": {"type": "integer"},
                "day_summary": {"type": "string"},
                "activities": {"type": "array", "items": {"$ref": "#/definitions/types.Activity"}}
            }
        },
        "types.InterestsUsage": {
            "type": "object",
            "properties": {
                "used": {"type": "integer"},
                "total": {"type": "integer"},
                "percentage": {"type": "number"}
            }
        },
        "types.AccuracyReport": {
            "type": "object",
            "properties": {
                "overall_accuracy": {"type": "number"},
                "accuracy_per_interest": {"type": "object", "additionalProperties": {"type": "number"}},
                "total_pois": {"type": "integer"},
                "matches_found": {"type": "integer"},
                "interest_matches": {"type": "object", "additionalProperties": {"type": "integer"}},
                "interests_usage": {"$ref": "#/definitions/types.InterestsUsage"}
            }
        },
        "types.TravelPlan": {
            "type": "object",
            "properties": {
                "trip_summary": {"type": "string"},
                "general_tips": {"type": "string"},
                "interests_accuracy": {"$ref": "#/definitions/types.AccuracyReport"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/types.DayPlan"}},
                "poster_url": {"type": "string"}
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ireland Travel Planner API",
	Description:      "Builds day by day Ireland itineraries from a POI catalogue and an LLM.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
