package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Unischedule API",
        "description": "Timetabling solver service: instance validation, solve/reoptimize jobs, saved schedules and exports.",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    }
                }
            }
        },
        "/v1/validate": {
            "post": {
                "summary": "Validate a timetabling instance",
                "tags": ["Solver"],
                "responses": {
                    "200": {
                        "description": "Validation report"
                    }
                }
            }
        },
        "/v1/solve": {
            "post": {
                "summary": "Enqueue a solve job",
                "tags": ["Solver"],
                "responses": {
                    "202": {
                        "description": "Job accepted"
                    }
                }
            }
        },
        "/v1/reoptimize": {
            "post": {
                "summary": "Enqueue a reoptimize job from a prior solution",
                "tags": ["Solver"],
                "responses": {
                    "202": {
                        "description": "Job accepted"
                    }
                }
            }
        },
        "/v1/jobs/{id}": {
            "get": {
                "summary": "Get job status",
                "tags": ["Solver"],
                "responses": {
                    "200": {
                        "description": "Job status"
                    }
                }
            }
        },
        "/v1/jobs/{id}/result": {
            "get": {
                "summary": "Get job result",
                "tags": ["Solver"],
                "responses": {
                    "200": {
                        "description": "Job result or not-ready envelope"
                    }
                }
            }
        },
        "/v1/explain": {
            "post": {
                "summary": "Recompute the score breakdown for an instance and assignment set",
                "tags": ["Solver"],
                "responses": {
                    "200": {
                        "description": "Score breakdown"
                    }
                }
            }
        },
        "/v1/schedules": {
            "post": {
                "summary": "Save a solve result under a name",
                "tags": ["Schedules"],
                "responses": {
                    "201": {
                        "description": "Saved schedule"
                    }
                }
            },
            "get": {
                "summary": "List saved schedules",
                "tags": ["Schedules"],
                "responses": {
                    "200": {
                        "description": "Saved schedules"
                    }
                }
            }
        },
        "/v1/schedules/{id}": {
            "get": {
                "summary": "Get a saved schedule",
                "tags": ["Schedules"],
                "responses": {
                    "200": {
                        "description": "Saved schedule"
                    }
                }
            },
            "delete": {
                "summary": "Delete a saved schedule",
                "tags": ["Schedules"],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                }
            }
        },
        "/v1/schedules/{id}/export": {
            "get": {
                "summary": "Export a saved schedule as CSV or PDF",
                "tags": ["Schedules"],
                "responses": {
                    "200": {
                        "description": "Rendered file"
                    }
                }
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
