package models

import (
	"context"
	"fmt"
)

type Library interface {
	List() []Book
	SearchByRating(rating int) []Book
	GetById(id int) (Book, error)
	Create(input BookInput) Book
	Update(id int, input BookInput) (Book, error)
	Stats() LibraryStats
	Len() int
}

// BookIndex mirrors stored books into a secondary search backend.
type BookIndex interface {
	Put(ctx context.Context, book Book) error
}

type LibraryStats struct {
	NumberOfBooks   int `json:"number_of_books"`
	NumberOfAuthors int `json:"number_of_authors"`
}

type NotFoundError struct {
	Id int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Book with ID: %d not found", e.Id)
}
