package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/securepass/internal/generator"
)

// Generate produces a random password locally. Nothing touches the network,
// so generated passwords exist only on this machine until the user decides
// to store them.
func (a *App) Generate(ctx context.Context) error {
	policy := generator.DefaultPolicy()

	lengthText, err := getSimpleText(a.reader, fmt.Sprintf("Enter length (default %d)", policy.Length), os.Stdout)
	if err != nil {
		return err
	}
	if lengthText != "" {
		length, err := strconv.Atoi(lengthText)
		if err != nil {
			fmt.Println("Invalid length")
			return err
		}
		policy.Length = length
	}

	symbols, err := getSimpleText(a.reader, "Include symbols? (Y/n)", os.Stdout)
	if err != nil {
		return err
	}
	policy.Symbols = symbols != "n" && symbols != "N"

	password, err := generator.Generate(policy)
	if err != nil {
		fmt.Println("Generation failed:", err)
		return err
	}

	fmt.Println("Generated password:")
	fmt.Println(password)
	return nil
}
