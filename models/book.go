package models

import (
	"encoding/json"
	"math"
	"reflect"
)

type Book struct {
	Id       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

// BookInput is the caller supplied part of a book. An id sent by the caller
// is not part of the input and never reaches the store.
type BookInput struct {
	Title    string `json:"title" binding:"required,min=4,max=100"`
	Author   string `json:"author" binding:"required,min=2,max=10"`
	Category string `json:"category" binding:"required,min=3"`
	Rating   int    `json:"rating" binding:"required,gt=0,lt=6"`
}

// UnmarshalJSON accepts a rating written as any integral JSON number
// (4, 4.0, "4"). Fractional ratings are rejected.
func (input *BookInput) UnmarshalJSON(data []byte) error {
	type plainInput BookInput
	aux := struct {
		*plainInput
		Rating json.Number `json:"rating"`
	}{plainInput: (*plainInput)(input)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Rating == "" {
		input.Rating = 0
		return nil
	}

	rating, err := aux.Rating.Float64()
	if err != nil || rating != math.Trunc(rating) || math.Abs(rating) > math.MaxInt32 {
		return &json.UnmarshalTypeError{
			Value: "number " + aux.Rating.String(),
			Type:  reflect.TypeOf(input.Rating),
			Field: "rating",
		}
	}
	input.Rating = int(rating)
	return nil
}

// WithId builds the stored record for input.
func (input BookInput) WithId(id int) Book {
	return Book{
		Id:       id,
		Title:    input.Title,
		Author:   input.Author,
		Category: input.Category,
		Rating:   input.Rating,
	}
}

func SeedBooks() []Book {
	return []Book{
		{Id: 1, Title: "Programming with Py", Author: "chandanch", Category: "computers", Rating: 4},
		{Id: 2, Title: "Programming with TS", Author: "fameer", Category: "computers", Rating: 3},
		{Id: 3, Title: "Divine", Author: "chandanch", Category: "spiritual", Rating: 4},
		{Id: 4, Title: "Programming with R", Author: "chandanch", Category: "computers", Rating: 5},
	}
}
