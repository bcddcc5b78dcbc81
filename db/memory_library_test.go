package db

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"library/models"
)

func newInput(title string, rating int) models.BookInput {
	return models.BookInput{Title: title, Author: "chandanch", Category: "lean", Rating: rating}
}

func ids(books []models.Book) []int {
	result := make([]int, 0, len(books))
	for _, book := range books {
		result = append(result, book.Id)
	}
	return result
}

func seededLibrary(t *testing.T) *MemoryLibrary {
	t.Helper()
	library, err := NewSeededLibrary(models.SeedBooks())
	require.NoError(t, err)
	return library
}

func TestSeededLibraryScenario(t *testing.T) {
	library := seededLibrary(t)

	assert.Equal(t, []int{1, 3}, ids(library.SearchByRating(4)))

	created := library.Create(models.BookInput{
		Title:    "My new Birnds",
		Author:   "chandanch",
		Category: "lean",
		Rating:   4,
	})
	assert.Equal(t, 5, created.Id)
	assert.Len(t, library.List(), 5)
	assert.Equal(t, created, library.List()[4])

	_, err := library.GetById(99)
	var notFound *models.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, 99, notFound.Id)
	assert.Equal(t, "Book with ID: 99 not found", err.Error())

	updated, err := library.Update(2, newInput("Programming with Go", 1))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Id)
	assert.Equal(t, updated, library.List()[1])
}

func TestCreateOnEmptyLibraryAssignsOne(t *testing.T) {
	library := NewMemoryLibrary()

	book := library.Create(newInput("First", 3))
	assert.Equal(t, 1, book.Id)
	assert.Equal(t, 2, library.Create(newInput("Second", 3)).Id)
}

func TestCreateThenGetReturnsInput(t *testing.T) {
	library := seededLibrary(t)
	input := models.BookInput{Title: "Distributed", Author: "noam", Category: "systems", Rating: 5}

	created := library.Create(input)
	fetched, err := library.GetById(created.Id)

	require.NoError(t, err)
	assert.Equal(t, input.WithId(created.Id), fetched)
}

func TestListGrowsOnlyOnCreate(t *testing.T) {
	library := seededLibrary(t)
	before := len(library.List())

	library.Create(newInput("Growing", 2))
	assert.Len(t, library.List(), before+1)

	_, err := library.Update(1, newInput("Replaced", 2))
	require.NoError(t, err)
	assert.Len(t, library.List(), before+1)

	_, err = library.Update(42, newInput("Missing", 2))
	require.Error(t, err)
	assert.Len(t, library.List(), before+1)
}

func TestUpdateMissingLeavesLibraryUntouched(t *testing.T) {
	library := seededLibrary(t)
	before := library.List()

	_, err := library.Update(7, newInput("Ghost", 1))

	var notFound *models.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, before, library.List())
}

func TestUpdatePreservesIdAndPosition(t *testing.T) {
	library := seededLibrary(t)
	input := models.BookInput{Title: "Rewritten", Author: "fameer", Category: "fiction", Rating: 2}

	updated, err := library.Update(3, input)
	require.NoError(t, err)

	books := library.List()
	assert.Equal(t, []int{1, 2, 3, 4}, ids(books))
	assert.Equal(t, input.WithId(3), books[2])
	assert.Equal(t, books[2], updated)
}

func TestSearchByRatingMatchesExactly(t *testing.T) {
	library := seededLibrary(t)
	library.Create(newInput("Another four", 4))

	for rating := 1; rating <= 5; rating++ {
		result := library.SearchByRating(rating)
		assert.NotNil(t, result)

		expected := make([]int, 0)
		for _, book := range library.List() {
			if book.Rating == rating {
				expected = append(expected, book.Id)
			}
		}
		assert.Equal(t, expected, ids(result), "rating %d", rating)
	}
}

func TestIdsNeverRepeatAfterSeedGaps(t *testing.T) {
	library, err := NewSeededLibrary([]models.Book{
		{Id: 10, Title: "Ten", Author: "ab", Category: "abc", Rating: 1},
		{Id: 3, Title: "Three", Author: "ab", Category: "abc", Rating: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 11, library.Create(newInput("Eleven", 1)).Id)
}

func TestListReturnsCopy(t *testing.T) {
	library := seededLibrary(t)

	books := library.List()
	books[0].Title = "mutated"

	book, err := library.GetById(1)
	require.NoError(t, err)
	assert.Equal(t, "Programming with Py", book.Title)
}

func TestStatsCountsDistinctAuthors(t *testing.T) {
	library := seededLibrary(t)

	assert.Equal(t, models.LibraryStats{NumberOfBooks: 4, NumberOfAuthors: 2}, library.Stats())
	assert.Equal(t, 4, library.Len())
}

func TestConcurrentCreatesAssignUniqueIds(t *testing.T) {
	library := NewMemoryLibrary()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			library.Create(newInput("Parallel", 3))
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, book := range library.List() {
		assert.False(t, seen[book.Id], "duplicate id %d", book.Id)
		seen[book.Id] = true
	}
	assert.Len(t, seen, 50)
}

func TestSeededLibraryRejectsDuplicateIds(t *testing.T) {
	library, err := NewSeededLibrary([]models.Book{
		{Id: 1, Title: "Programming with Py", Author: "chandanch", Category: "computers", Rating: 4},
		{Id: 1, Title: "Programming with TS", Author: "fameer", Category: "computers", Rating: 3},
	})

	assert.EqualError(t, err, "duplicate seed id: 1")
	assert.Nil(t, library)
}

func TestSeededLibraryRejectsNonPositiveIds(t *testing.T) {
	_, err := NewSeededLibrary([]models.Book{{Id: 0, Title: "Zero", Author: "ab", Category: "abc", Rating: 1}})
	assert.Error(t, err)
}
