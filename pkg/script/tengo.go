package script

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoInterpreter is the interpreter name reported for in-process tengo scripts.
const TengoInterpreter = "tengo"

// runTengo compiles and runs a tengo install script in-process. The script
// sees package_name and package_root, and may signal failure by assigning a
// non-empty string or error to err.
func runTengo(ctx context.Context, source []byte, packageName, packageRoot string) error {
	s := tengo.NewScript(source)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	if err := s.Add("package_name", packageName); err != nil {
		return fmt.Errorf("failed to add package_name to script: %w", err)
	}
	if err := s.Add("package_root", packageRoot); err != nil {
		return fmt.Errorf("failed to add package_root to script: %w", err)
	}
	if err := s.Add("err", ""); err != nil {
		return fmt.Errorf("failed to add err to script: %w", err)
	}

	compiled, err := s.RunContext(ctx)
	if err != nil {
		return err
	}

	errVar := compiled.Get("err")
	switch v := errVar.Value().(type) {
	case error:
		return v
	case string:
		if v != "" {
			return fmt.Errorf("%s", v)
		}
	}
	return nil
}
