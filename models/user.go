package models

// User holds the structure for the user collection in mongo. Reporter
// accounts live under a nested "user" document, mirroring how the frontend
// submits them.
type User struct {
	ID      string      `json:"_id" bson:"_id"`
	Details UserDetails `json:"user" bson:"user"`
}

// UserDetails holds the inner reporter account fields
type UserDetails struct {
	Name        string      `json:"name" bson:"name"`
	Phone       string      `json:"phone" bson:"phone"`
	Username    string      `json:"username" bson:"username"`
	Password    string      `json:"password" bson:"password"`
	Institution string      `json:"institution" bson:"institution"`
	CreatedAt   interface{} `json:"createdAt" bson:"createdAt"`
}
