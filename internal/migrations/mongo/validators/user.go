package validators

import "go.mongodb.org/mongo-driver/bson"

// Admin promotion upserts a stub document carrying only the role field, so
// nothing here can be required.
var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"admin"},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
