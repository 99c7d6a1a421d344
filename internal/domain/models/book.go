package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Owner       Owner              `bson:"owner" json:"owner"`
}

type Owner struct {
	Id    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// BookUpdate carries the fields of a partial update. Nil means "leave as is".
type BookUpdate struct {
	Title       *string
	Author      *string
	Description *string
	Price       *float64
	Category    *string
}
