package validators

import "go.mongodb.org/mongo-driver/bson"

var ResourceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"resource_id",
			"name",
			"is_active",
			"booking_config",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"resource_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"booking_config": bson.M{
				"bsonType": "object",
				"required": []string{"duration", "start_time", "end_time"},
				"properties": bson.M{
					"duration": bson.M{
						"bsonType": "int",
						"minimum":  15,
						"maximum":  480,
					},
					"start_time": bson.M{
						"bsonType": "string",
						"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
					},
					"end_time": bson.M{
						"bsonType": "string",
						"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
