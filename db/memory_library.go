package db

import (
	"fmt"
	"sync"

	"library/models"
)

// MemoryLibrary keeps books in process memory in insertion order.
// Ids come from a counter that only moves forward, so a book never
// inherits the id of another one whatever the slice looks like.
type MemoryLibrary struct {
	mu     sync.RWMutex
	books  []models.Book
	lastId int
}

func NewMemoryLibrary() *MemoryLibrary {
	return &MemoryLibrary{books: make([]models.Book, 0)}
}

// NewSeededLibrary returns a library holding the given books. The id
// counter starts after the highest seeded id. Seed ids must be positive
// and unique.
func NewSeededLibrary(seed []models.Book) (*MemoryLibrary, error) {
	library := NewMemoryLibrary()
	seen := make(map[int]struct{}, len(seed))
	for _, book := range seed {
		if book.Id <= 0 {
			return nil, fmt.Errorf("invalid seed id: %d (must be positive)", book.Id)
		}
		if _, ok := seen[book.Id]; ok {
			return nil, fmt.Errorf("duplicate seed id: %d", book.Id)
		}
		seen[book.Id] = struct{}{}

		library.books = append(library.books, book)
		if book.Id > library.lastId {
			library.lastId = book.Id
		}
	}
	return library, nil
}

func (library *MemoryLibrary) List() []models.Book {
	library.mu.RLock()
	defer library.mu.RUnlock()

	books := make([]models.Book, len(library.books))
	copy(books, library.books)
	return books
}

func (library *MemoryLibrary) SearchByRating(rating int) []models.Book {
	library.mu.RLock()
	defer library.mu.RUnlock()

	books := make([]models.Book, 0)
	for _, book := range library.books {
		if book.Rating == rating {
			books = append(books, book)
		}
	}
	return books
}

func (library *MemoryLibrary) GetById(id int) (models.Book, error) {
	library.mu.RLock()
	defer library.mu.RUnlock()

	for _, book := range library.books {
		if book.Id == id {
			return book, nil
		}
	}
	return models.Book{}, &models.NotFoundError{Id: id}
}

func (library *MemoryLibrary) Create(input models.BookInput) models.Book {
	library.mu.Lock()
	defer library.mu.Unlock()

	library.lastId++
	book := input.WithId(library.lastId)
	library.books = append(library.books, book)
	return book
}

func (library *MemoryLibrary) Update(id int, input models.BookInput) (models.Book, error) {
	library.mu.Lock()
	defer library.mu.Unlock()

	for i := range library.books {
		if library.books[i].Id == id {
			library.books[i] = input.WithId(id)
			return library.books[i], nil
		}
	}
	return models.Book{}, &models.NotFoundError{Id: id}
}

func (library *MemoryLibrary) Stats() models.LibraryStats {
	library.mu.RLock()
	defer library.mu.RUnlock()

	authors := make(map[string]struct{})
	for _, book := range library.books {
		authors[book.Author] = struct{}{}
	}
	return models.LibraryStats{
		NumberOfBooks:   len(library.books),
		NumberOfAuthors: len(authors),
	}
}

func (library *MemoryLibrary) Len() int {
	library.mu.RLock()
	defer library.mu.RUnlock()
	return len(library.books)
}
