package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"xdao.co/randstate/attach"
	"xdao.co/randstate/attach/localfs"
	"xdao.co/randstate/attach/memory"
	"xdao.co/randstate/grpcrand"
	"xdao.co/randstate/identity"
	"xdao.co/randstate/randstate"
)

func main() {
	fs := flag.NewFlagSet("randstated", flag.ExitOnError)
	configPath := fs.String("config", "", "path to TOML config file")
	listen := fs.String("listen", "", "listen address (overrides config)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("svc", "randstated").Logger()

	var store attach.Store
	switch cfg.Backend {
	case "localfs":
		store, err = localfs.New(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("open localfs store")
		}
	default:
		store = memory.New()
	}

	sys := identity.Principal(cfg.SystemPrincipal)
	authz := identity.StaticSystem{System: sys}

	// Bootstrap exactly once: first start creates the state object at the
	// genesis epoch, every later start reopens it.
	var handle *randstate.Handle
	if store.Has(randstate.CurrentVersion) {
		handle, err = randstate.Open(store, authz)
		if err != nil {
			log.Fatal().Err(err).Msg("open randomness state")
		}
		log.Info().Uint64("version", handle.Version()).Msg("randomness state opened")
	} else {
		handle, err = randstate.Create(store, authz, randstate.ExecContext{Caller: sys, Epoch: cfg.GenesisEpoch})
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap randomness state")
		}
		log.Info().Uint64("epoch", cfg.GenesisEpoch).Msg("randomness state created")
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcrand.RegisterRandomnessStateServer(s, grpcrand.NewServer(handle, log))

	log.Info().Str("addr", lis.Addr().String()).Str("backend", cfg.Backend).Msg("randstated listening")
	if err := s.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
