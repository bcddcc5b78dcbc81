package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"library/models"
)

type bookUri struct {
	Id int `uri:"id" binding:"required,gt=0"`
}

type ratingQuery struct {
	Rating int `form:"rating" binding:"required,gt=0,lt=6"`
}

// bindBookUri binds the :id path parameter. A positive id too large for an
// int is reported as beyondRange instead of an error: no book can have it.
func bindBookUri(c *gin.Context) (uri bookUri, beyondRange bool, err error) {
	err = c.ShouldBindUri(&uri)

	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && !strings.HasPrefix(c.Param("id"), "-") {
		return uri, true, nil
	}
	return uri, false, err
}

func abortWithBookNotFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
		"error": "Book not found",
		"msg":   msg,
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (server *Server) ListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, server.Library.List())
}

func (server *Server) SearchBooks(c *gin.Context) {
	var query ratingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		server.abortWithValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, server.Library.SearchByRating(query.Rating))
}

func (server *Server) GetBookById(c *gin.Context) {
	uri, beyondRange, err := bindBookUri(c)
	if err != nil {
		server.abortWithValidationError(c, err)
		return
	}
	if beyondRange {
		abortWithBookNotFound(c, fmt.Sprintf("Book with ID: %s not found", c.Param("id")))
		return
	}

	book, err := server.Library.GetById(uri.Id)

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		abortWithBookNotFound(c, notFound.Error())
		return
	}
	if err != nil {
		server.Logger.Error("fetching book failed", "id", uri.Id, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, book)
}

func (server *Server) CreateBook(c *gin.Context) {
	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		server.abortWithValidationError(c, err)
		return
	}

	book := server.Library.Create(input)
	server.Logger.Info("book created", "id", book.Id, "request_id", c.GetString(RequestIDKey))
	server.mirror(c, book)

	c.JSON(http.StatusOK, book)
}

// UpdateBook replaces a book. A missing book is reported in the payload
// with a 200 status, unlike GetBookById.
func (server *Server) UpdateBook(c *gin.Context) {
	uri, beyondRange, err := bindBookUri(c)
	if err != nil {
		server.abortWithValidationError(c, err)
		return
	}

	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		server.abortWithValidationError(c, err)
		return
	}

	if beyondRange {
		c.JSON(http.StatusOK, gin.H{"status": "Not found"})
		return
	}

	book, err := server.Library.Update(uri.Id, input)

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusOK, gin.H{"status": "Not found"})
		return
	}
	if err != nil {
		server.Logger.Error("updating book failed", "id", uri.Id, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	server.mirror(c, book)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (server *Server) Store(c *gin.Context) {
	c.JSON(http.StatusOK, server.Library.Stats())
}

func (server *Server) Activity(c *gin.Context) {
	username := c.Param("username")

	userRequests, err := server.Cache.Read(username)

	if err != nil {
		server.Logger.Error("reading activity failed", "username", username, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": err.Error(),
		})
		return
	}

	userRequestsRaw := make([]models.UserRequest, 0, len(userRequests))

	for _, request := range userRequests {
		var userRequest models.UserRequest
		if err := json.Unmarshal([]byte(request), &userRequest); err != nil {
			server.Logger.Warn("skipping malformed activity entry", "username", username, "error", err)
			continue
		}
		userRequestsRaw = append(userRequestsRaw, userRequest)
	}

	c.JSON(http.StatusOK, userRequestsRaw)
}

// mirror copies book into the search index. Index failures are logged and
// never fail the request.
func (server *Server) mirror(c *gin.Context, book models.Book) {
	if server.Index == nil {
		return
	}

	if err := server.Index.Put(c.Request.Context(), book); err != nil {
		server.Logger.Warn("mirroring book failed", "id", book.Id, "error", err)
	}
}
