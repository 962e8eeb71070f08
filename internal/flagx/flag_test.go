package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-d", "-b"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "values as separate args",
			args:    []string{"-a", ":5000", "-d", "/var/lib/foodstore"},
			allowed: serverFlags,
			want:    []string{"-a", ":5000", "-d", "/var/lib/foodstore"},
		},
		{
			name:    "inline values",
			args:    []string{"-a=:8080", "-b=memory"},
			allowed: serverFlags,
			want:    []string{"-a=:8080", "-b=memory"},
		},
		{
			name:    "loader flags are skipped with their values",
			args:    []string{"-c", "conf.json", "-env", "prod.env", "-d", "data"},
			allowed: serverFlags,
			want:    []string{"-d", "data"},
		},
		{
			name:    "inline value may start with a dash",
			args:    []string{"-d=-tmp"},
			allowed: serverFlags,
			want:    []string{"-d=-tmp"},
		},
		{
			name:    "next flag is not taken as a value",
			args:    []string{"-a", "-d", "data"},
			allowed: serverFlags,
			want:    []string{"-a", "-d", "data"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-b"},
			allowed: serverFlags,
			want:    []string{"-b"},
		},
		{
			name:    "positional args dropped",
			args:    []string{"serve", "a=b", "-a", ":1"},
			allowed: serverFlags,
			want:    []string{"-a", ":1"},
		},
		{
			name:    "repeats preserved in order",
			args:    []string{"-c", "one.json", "-config=two.json", "-c", "three.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "one.json", "-config=two.json", "-c", "three.json"},
		},
		{
			name:    "nothing to keep",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}

func Test_envFileFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("env with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", ":5000", "-env", "/path/prod.env"}
		assert.Equal(t, "/path/prod.env", EnvFileFlags())
	})

	t.Run("equals form", func(t *testing.T) {
		os.Args = []string{"testbin", "-env=/path/dev.env"}
		assert.Equal(t, "/path/dev.env", EnvFileFlags())
	})

	t.Run("config flag does not leak into env", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/conf.json"}
		assert.Empty(t, EnvFileFlags())
	})
}
