// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Solar Wind Forecast Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/forecast": {
            "get": {
                "description": "Resolves the location and returns the hourly solar and wind power density estimates for the next 3 days.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "Get a solar and wind power forecast",
                "parameters": [
                    {
                        "type": "string",
                        "example": "52.52,13.41",
                        "description": "Place name or latitude,longitude",
                        "name": "location",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successful response",
                        "schema": {"$ref": "#/definitions/models.ForecastResponse"}
                    },
                    "400": {
                        "description": "Bad request - invalid location or coordinates",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "404": {
                        "description": "Location not found",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "502": {
                        "description": "Upstream error or invalid upstream data",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    },
                    "503": {
                        "description": "Upstream unreachable",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        },
        "/forecast": {
            "post": {
                "description": "Geocodes the location, fetches a 3-day hourly forecast and stores it in the caller's session.\nBrowsers are redirected back to the page; clients sending Accept: application/json get the session view.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Page"],
                "summary": "Submit a location",
                "parameters": [
                    {
                        "type": "string",
                        "example": "52.52,13.41",
                        "description": "Place name or latitude,longitude",
                        "name": "location",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Session view, including a failed submission's error message",
                        "schema": {"$ref": "#/definitions/http.SessionResponse"}
                    },
                    "303": {
                        "description": "Redirect to the page"
                    },
                    "409": {
                        "description": "A submission for this session is still running",
                        "schema": {"$ref": "#/definitions/models.ErrorResponse"}
                    }
                }
            }
        },
        "/tables/{series}": {
            "post": {
                "description": "Updates only this series' pagination and returns the re-rendered tables. No network call is made.",
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["Page"],
                "summary": "Change the page of one series table",
                "parameters": [
                    {
                        "enum": ["solar", "wind"],
                        "type": "string",
                        "description": "Series",
                        "name": "series",
                        "in": "path",
                        "required": true
                    },
                    {
                        "minimum": 0,
                        "type": "integer",
                        "example": 3,
                        "description": "0-based page index",
                        "name": "page",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Tables HTML fragment", "schema": {"type": "string"}},
                    "400": {"description": "Invalid page", "schema": {"type": "string"}},
                    "404": {"description": "Unknown series", "schema": {"type": "string"}},
                    "409": {"description": "No forecast to page through", "schema": {"type": "string"}}
                }
            }
        },
        "/theme": {
            "post": {
                "description": "Flips the theme cookie between light and dark and returns the new value.",
                "produces": ["application/json"],
                "tags": ["Page"],
                "summary": "Toggle the colour theme",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/http.ThemeResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "http.SessionResponse": {
            "type": "object",
            "properties": {
                "chart": {"type": "object"},
                "error": {"type": "string", "example": ""},
                "label": {"type": "string", "example": "Berlin, Land Berlin, Germany"},
                "location": {"type": "string", "example": "Berlin"},
                "state": {"type": "string", "example": "displayed"},
                "tables_html": {"type": "string"}
            }
        },
        "http.ThemeResponse": {
            "type": "object",
            "properties": {
                "theme": {"type": "string", "example": "dark-mode"}
            }
        },
        "models.Coordinates": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number", "example": 52.52},
                "longitude": {"type": "number", "example": 13.41}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Error finding location: Location \"Nowhere12345\" not found. Please be more specific or use coordinates."},
                "kind": {"type": "string", "example": "not_found"}
            }
        },
        "models.ForecastResponse": {
            "type": "object",
            "properties": {
                "coordinates": {"$ref": "#/definitions/models.Coordinates"},
                "hours": {"type": "array", "items": {"$ref": "#/definitions/models.HourPower"}},
                "location": {"type": "string", "example": "Berlin"},
                "page_size": {"type": "integer", "example": 6},
                "pages": {"type": "integer", "example": 12},
                "timezone": {"type": "string", "example": "Europe/Berlin"}
            }
        },
        "models.HourPower": {
            "type": "object",
            "properties": {
                "solar_power": {"type": "number", "example": 412.5},
                "time": {"type": "string", "example": "2026-10-16T13:00:00+02:00"},
                "wind_power": {"type": "number", "example": 27.21}
            }
        }
    },
    "tags": [
        {"description": "Power forecast operations", "name": "Forecast"},
        {"description": "Browser page interactions", "name": "Page"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Solar Wind Forecast",
	Description:      "Hourly solar and wind power density estimates derived from the Open-Meteo forecast.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
