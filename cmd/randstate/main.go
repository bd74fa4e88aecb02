package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"xdao.co/randstate/grpcrand"
	"xdao.co/randstate/identity"
	"xdao.co/randstate/model"
	"xdao.co/randstate/randstate"
	"xdao.co/randstate/wire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "keygen":
		return cmdKeygen(args[1:], out, errOut)
	case "submit":
		return cmdSubmit(args[1:], out, errOut)
	case "state":
		return cmdState(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "randstate: randomness state producer/operator CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  randstate keygen [--seed-hex <64hex>]")
	fmt.Fprintln(w, "  randstate submit --addr <host:port> --epoch <n> --round <n> --bytes-hex <hex> (--seed-hex <64hex> | --key-file <path>)")
	fmt.Fprintln(w, "  randstate state --addr <host:port> [--version <n>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - submit signs the update envelope with the seed and sends it to randstated")
	fmt.Fprintln(w, "  - state prints the live inner state as JSON")
}

func cmdKeygen(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(errOut)
	seedHex := fs.String("seed-hex", "", "ed25519 seed as 64 hex chars (random when omitted)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var seed []byte
	if *seedHex != "" {
		var err error
		seed, err = parseSeedHex(*seedHex)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 2
		}
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
	}

	p, err := identity.FromEd25519Seed(seed)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "principal: %s\n", p)
	fmt.Fprintf(out, "seed-hex: %s\n", hex.EncodeToString(seed))
	return 0
}

func cmdSubmit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("addr", "127.0.0.1:7788", "randstated address")
	epoch := fs.Uint64("epoch", 0, "current epoch")
	round := fs.Uint64("round", 0, "randomness round")
	bytesHex := fs.String("bytes-hex", "", "randomness payload as hex")
	seedHex := fs.String("seed-hex", "", "ed25519 seed as 64 hex chars")
	keyFile := fs.String("key-file", "", "file containing the seed hex")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	seed, err := loadSeed(*seedHex, *keyFile)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	payload, err := hex.DecodeString(strings.TrimPrefix(*bytesHex, "0x"))
	if err != nil {
		fmt.Fprintf(errOut, "invalid --bytes-hex: %v\n", err)
		return 2
	}

	p, err := identity.FromEd25519Seed(seed)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	envelope, err := wire.EncodeUpdate(wire.Update{Epoch: *epoch, Round: *round, RandomBytes: payload})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	signed := wire.SignedUpdate{
		Principal: string(p),
		Signature: identity.SignEd25519(envelope, ed25519.NewKeyFromSeed(seed)),
		Envelope:  envelope,
	}

	client, err := grpcrand.Dial(*addr, grpcrand.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()
	client.Timeout = 5 * time.Second

	committed, err := client.Submit(signed)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintf(out, "committed round %d (epoch %d)\n", committed, *epoch)
	return 0
}

func cmdState(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("state", flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("addr", "127.0.0.1:7788", "randstated address")
	version := fs.Uint64("version", 0, "state version (0 = current)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client, err := grpcrand.Dial(*addr, grpcrand.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()
	client.Timeout = 5 * time.Second

	inner, err := client.State(*version)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	view := model.ViewFromInner(randstate.ObjectID, inner)
	b, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, string(b))
	return 0
}

func parseSeedHex(s string) ([]byte, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "0x"))
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid seed hex: %w", err)
	}
	if len(b) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(b))
	}
	return b, nil
}

func loadSeed(seedHex, keyFile string) ([]byte, error) {
	if seedHex != "" {
		return parseSeedHex(seedHex)
	}
	if keyFile != "" {
		b, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, err
		}
		return parseSeedHex(strings.TrimSpace(string(b)))
	}
	return nil, fmt.Errorf("no signer provided (use --seed-hex or --key-file)")
}
