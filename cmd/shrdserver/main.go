/*
Shrdserver starts a Shrdlite session server and begins listening for new
connections.

Usage:

	shrdserver [flags]
	shrdserver [flags] -l [[ADDRESS]:PORT]

Once started, the server listens for HTTP requests and responds using the
REST API described in the project documentation. By default, it listens on
localhost:8080. This can be changed with the --listen/-l flag (or the
SHRDLITE_LISTEN_ADDRESS environment variable).

If a JWT token secret is not given, one is automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as
soon as the server shuts down. This is suitable for testing, but must be
given via either CLI flags or environment variable if running in
production.

The flags are:

	-v, --version
		Give the current version of the server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		SHRDLITE_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing session JWTs. If there are
		fewer than 32 bytes in the secret, it is repeated until it is. The
		maximum size is 64 bytes. If not given, defaults to the value of
		environment variable SHRDLITE_TOKEN_SECRET; if that is also empty,
		a random secret is generated.

	-d, --data-dir DIR
		Directory the sqlite persistence layer stores sessions in. Defaults
		to the value of environment variable SHRDLITE_DATA_DIR, or "./data"
		if unset.

	-w, --world-dir DIR
		Directory POST /api/v1/sessions loads named .sww world fixtures
		from. Defaults to the value of environment variable
		SHRDLITE_WORLD_DIR, or "./worlds" if unset.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/shrdlite/internal/version"
	"github.com/dekarrin/shrdlite/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen   = "SHRDLITE_LISTEN_ADDRESS"
	EnvSecret   = "SHRDLITE_TOKEN_SECRET"
	EnvDataDir  = "SHRDLITE_DATA_DIR"
	EnvWorldDir = "SHRDLITE_WORLD_DIR"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of the server and then exit.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for signing session tokens.")
	flagDataDir  = pflag.StringP("data-dir", "d", "", "Directory to store session data in.")
	flagWorldDir = pflag.StringP("world-dir", "w", "", "Directory to load named world fixtures from.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (Shrdlite v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := "localhost"
	port := 8080
	listenAddr := envOrFlag(EnvListen, "listen", *flagListen)
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}
		addr = bindParts[0]
		var err error
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	tokSecret := secretBytes(envOrFlag(EnvSecret, "secret", *flagSecret))

	cfg := server.Config{
		TokenSecret: tokSecret,
		DataDir:     firstNonEmpty(envOrFlag(EnvDataDir, "data-dir", *flagDataDir), "./data"),
		WorldDir:    firstNonEmpty(envOrFlag(EnvWorldDir, "world-dir", *flagWorldDir), "./worlds"),
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()

	log.Printf("INFO  Starting Shrdlite server %s...", version.ServerCurrent)
	listenOn := fmt.Sprintf("%s:%d", addr, port)
	log.Fatal(http.ListenAndServe(listenOn, srv))
}

func envOrFlag(envVar, flagName, flagVal string) string {
	if pflag.Lookup(flagName).Changed {
		return flagVal
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return flagVal
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func secretBytes(given string) []byte {
	if given == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret
	}

	secret := []byte(given)
	for len(secret) < 32 {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > 64 {
		fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= 64 bytes\nDo -h for help.\n", len(secret))
		os.Exit(1)
	}
	return secret
}
