// catalog-check validates a role catalog file and prints per-role question
// counts. Run it after editing configs/roles.yaml.
package main

import (
	"flag"
	"fmt"
	"os"

	"mock-interview/internal/catalog"
)

func main() {
	path := flag.String("file", "configs/roles.yaml", "catalog YAML file to check")
	flag.Parse()

	cat, err := catalog.Load(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid catalog:", err)
		os.Exit(1)
	}

	total := 0
	for _, key := range cat.Keys() {
		role, _ := cat.Role(key)
		n := len(cat.Questions(key))
		total += n
		marker := ""
		if n == 0 {
			marker = " (fallback generation only)"
		}
		fmt.Printf("%-28s %-28s %d questions%s\n", key, role.Name, n, marker)
	}
	fmt.Printf("\n%d roles, %d questions\n", len(cat.Keys()), total)
}
