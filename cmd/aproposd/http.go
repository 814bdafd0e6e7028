package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *server) registerRoutes(e *echo.Echo) {
	e.GET("/search", s.handleSearch)
	e.GET("/databases", s.handleDatabases)
	e.GET("/validate/stream", s.handleValidateStream)
}

func (s *server) handleSearch(c echo.Context) error {
	req := &searchRequest{
		DB:   c.QueryParam("db"),
		Name: c.QueryParam("name"),
		Sect: c.QueryParam("sect"),
		Arch: c.QueryParam("arch"),
		Desc: c.QueryParam("desc"),
	}
	resp, err := s.Search(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if resp.Error != "" {
		return c.JSON(http.StatusBadRequest, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *server) handleDatabases(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"databases": s.pool.Names()})
}
