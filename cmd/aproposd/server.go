package main

import (
	"context"
	"fmt"

	"github.com/mdocgo/mdocgo/internal/dbm"
	"github.com/mdocgo/mdocgo/internal/diagconfig"
	"github.com/mdocgo/mdocgo/internal/search"
)

// server holds the shared state the HTTP, gRPC, and websocket front
// ends all read from: a pool of named open indexes and an optional
// diagnostic-promotion policy for the streaming validator.
type server struct {
	pool   *search.ReaderPool
	policy *diagconfig.Policy
}

type searchRequest struct {
	DB   string `json:"db"`
	Name string `json:"name,omitempty"`
	Sect string `json:"sect,omitempty"`
	Arch string `json:"arch,omitempty"`
	Desc string `json:"desc,omitempty"`
}

type searchResponse struct {
	Pages []pageDTO `json:"pages"`
	Error string    `json:"error,omitempty"`
}

type pageDTO struct {
	Name string `json:"name"`
	Sect string `json:"sect"`
	Arch string `json:"arch,omitempty"`
	Desc string `json:"desc"`
	File string `json:"file"`
}

// Search implements the AproposServer contract: it arms exactly one
// dbm.Reader iteration per request, picked by whichever field was
// given (name/sect/arch/desc precedence, matching cmd/apropos's
// literal-keyword-only scope).
func (s *server) Search(ctx context.Context, req *searchRequest) (*searchResponse, error) {
	r := s.pool.Get(req.DB)
	if r == nil {
		return &searchResponse{Error: fmt.Sprintf("unknown db %q", req.DB)}, nil
	}

	var term string
	switch {
	case req.Name != "":
		term = req.Name
		r.PageByName(dbm.MatchFunc(func(c string) bool { return c == term }))
	case req.Sect != "":
		term = req.Sect
		r.PageBySect(dbm.MatchFunc(func(c string) bool { return c == term }))
	case req.Arch != "":
		term = req.Arch
		r.PageByArch(dbm.MatchFunc(func(c string) bool { return c == term }))
	case req.Desc != "":
		term = req.Desc
		r.PageByDesc(dbm.MatchFunc(func(c string) bool { return c == term }))
	default:
		return &searchResponse{Error: "one of name/sect/arch/desc is required"}, nil
	}

	var pages []pageDTO
	for {
		hit := r.PageNext()
		if hit.Page < 0 {
			break
		}
		p := r.PageGet(hit.Page)
		pages = append(pages, pageDTO{Name: p.Name, Sect: p.Sect, Arch: p.Arch, Desc: p.Desc, File: p.File})
	}
	return &searchResponse{Pages: pages}, nil
}
