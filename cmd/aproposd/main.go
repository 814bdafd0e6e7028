// Command aproposd is a small network front end over internal/search's
// ReaderPool: HTTP/JSON and gRPC for page lookups, plus a websocket
// endpoint streaming internal/mdoc validation diagnostics. It never
// changes the on-disk index format or the I/V contracts — it is a thin
// transport, grounded line-for-line on the teacher's cmd/server/main.go
// (jsonCodec, registerTinySQLServer, manual MethodDesc plumbing).
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/mdocgo/mdocgo/internal/diagconfig"
	"github.com/mdocgo/mdocgo/internal/search"
)

// dbFlag accumulates repeated -db name=path flags.
type dbFlag map[string]string

func (d dbFlag) String() string {
	parts := make([]string, 0, len(d))
	for name, path := range d {
		parts = append(parts, name+"="+path)
	}
	return strings.Join(parts, ",")
}

func (d dbFlag) Set(v string) error {
	name, path, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("-db expects name=path, got %q", v)
	}
	d[name] = path
	return nil
}

func main() {
	dbs := make(dbFlag)
	flag.Var(dbs, "db", "name=path search-index to serve, repeatable")
	httpAddr := flag.String("http", ":8080", "HTTP listen address (empty to disable)")
	grpcAddr := flag.String("grpc", ":9090", "gRPC listen address (empty to disable)")
	pollSpec := flag.String("poll", "@every 30s", "cron spec for index staleness checks")
	policyPath := flag.String("policy", "", "YAML diagnostic-promotion policy for /validate/stream")
	flag.Parse()

	pool, err := search.NewReaderPool(*pollSpec)
	if err != nil {
		log.Fatalf("aproposd: %v", err)
	}
	defer pool.Close()

	for name, path := range dbs {
		if err := pool.Add(name, path); err != nil {
			log.Fatalf("aproposd: %v", err)
		}
	}

	var policy *diagconfig.Policy
	if *policyPath != "" {
		policy, err = diagconfig.Load(*policyPath)
		if err != nil {
			log.Fatalf("aproposd: %v", err)
		}
	}

	srv := &server{pool: pool, policy: policy}

	if *grpcAddr != "" {
		go serveGRPC(*grpcAddr, srv)
	}

	if *httpAddr != "" {
		e := echo.New()
		srv.registerRoutes(e)
		log.Printf("aproposd: HTTP listening on %s", *httpAddr)
		if err := e.Start(*httpAddr); err != nil {
			log.Printf("aproposd: HTTP serve error: %v", err)
		}
	} else {
		select {}
	}
}

func serveGRPC(addr string, srv *server) {
	encoding.RegisterCodec(jsonCodec{})
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("aproposd: gRPC listen error: %v", err)
		return
	}
	gs := grpc.NewServer()
	registerAproposServer(gs, srv)
	log.Printf("aproposd: gRPC listening on %s", addr)
	if err := gs.Serve(lis); err != nil {
		log.Printf("aproposd: gRPC serve error: %v", err)
		os.Exit(1)
	}
}
