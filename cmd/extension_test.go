package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	out := setup(t)
	*currency = "EUR"

	dir := t.TempDir()
	script := `#!/bin/sh
echo "GPL_STORE_DRIVER=$GPL_STORE_DRIVER"
echo "GPL_STORE_PATH=$GPL_STORE_PATH"
echo "GPL_CURRENCY=$GPL_CURRENCY"
echo "args=$*"
exit 3
`
	if err := os.WriteFile(filepath.Join(dir, "gpl-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("cannot write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatal("RunExtension() did not find gpl-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	assertContains(t, out.String(),
		"GPL_STORE_DRIVER=fs",
		"GPL_STORE_PATH="+*storePath,
		"GPL_CURRENCY=EUR",
		"args=a b",
	)
}

func TestExtensionNotFound(t *testing.T) {
	setup(t)
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("nope", nil)
	if found || code != 0 {
		t.Errorf("RunExtension(nope) = %v, %d, want false, 0", found, code)
	}
}
