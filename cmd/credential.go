package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tonhe/pricescope/internal/config"
	"github.com/tonhe/pricescope/internal/credential"
	"golang.org/x/term"
)

func credentialCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: pricescope credential <list|add|remove>")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		credentialList()
	case "add":
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		credentialAdd(name)
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: pricescope credential remove NAME")
			os.Exit(1)
		}
		credentialRemove(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown credential command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: pricescope credential <list|add|remove>")
		os.Exit(1)
	}
}

func credentialList() {
	store := openStore()
	summaries, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing credentials: %v\n", err)
		os.Exit(1)
	}

	if len(summaries) == 0 {
		fmt.Println("No credentials stored.")
		return
	}

	for _, s := range summaries {
		fmt.Printf("%-20s  provider=%-8s  key=%s\n", s.Name, s.Provider, s.Key)
	}
}

func credentialAdd(name string) {
	reader := bufio.NewReader(os.Stdin)

	if name == "" {
		fmt.Print("Credential name: ")
		name, _ = reader.ReadString('\n')
		name = strings.TrimSpace(name)
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: name is required")
		os.Exit(1)
	}

	fmt.Printf("Provider (%s) [%s]: ", strings.Join(config.Providers, ", "), name)
	provider, _ := reader.ReadString('\n')
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = strings.ToLower(name)
	}
	if !config.ValidProvider(provider) {
		fmt.Fprintf(os.Stderr, "Error: unknown provider %q\n", provider)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, "API key: ")
	apiKey, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading key: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	c := credential.Credential{Name: name, Provider: provider, APIKey: string(apiKey)}
	if err := store.Add(c); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding credential: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credential %q added.\n", name)
}

func credentialRemove(name string) {
	store := openStore()
	if err := store.Remove(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing credential: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Credential %q removed.\n", name)
}
