package binding

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatal(err)
	}
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user": {"name": "Ana"}, "tracks": [{"n": 3}, {"n": 4.5}], "empty": null}`)
	cases := []struct{ in, want string }{
		{"Olá, ${user.name}!", "Olá, Ana!"},
		{"faixa ${tracks[0].n} e ${tracks[1].n}", "faixa 3 e 4.5"},
		{"${user.missing}", "${user.missing}"},
		{"${user.missing|anônimo}", "anônimo"},
		{"${empty|nada}", "nada"},
		{"${tracks[9].n | ?}", "?"},
		{"sem marcadores", "sem marcadores"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	if got := Interpolate("${a} ${b|x}", nil); got != "${a} x" {
		t.Fatalf("got %q", got)
	}
	if got := Interpolate("${k}", map[string]string{"k": "v"}); got != "v" {
		t.Fatalf("string maps should resolve, got %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${a.b} e ${c[0] | d}")
	if diff := cmp.Diff([]string{"a.b", "c[0]"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
