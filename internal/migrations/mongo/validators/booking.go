package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingRequestValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"requester_id",
			"requester_name",
			"venue_id",
			"venue_name",
			"date",
			"time_slot",
			"title",
			"description",
			"attendees",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"requester_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"requester_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"venue_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"time_slot": bson.M{
				"enum": []string{"Morning", "Afternoon", "Evening"},
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 10,
				"maxLength": 2000,
			},

			"attendees": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"status": bson.M{
				"enum": []string{"pending", "approved", "rejected"},
			},

			"decided_by": bson.M{
				"bsonType": "string",
			},

			"decided_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
