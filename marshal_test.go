package varcfg_test

import (
	"reflect"
	"strings"
	"testing"

	varcfg "github.com/varcfg/varcfg-go"
)

type testServer struct {
	Host string `varcfg:"host"`
	Port int    `varcfg:"port"`
}

type testConfig struct {
	Title  string     `varcfg:"title"`
	Debug  bool       `varcfg:"debug,omitempty"`
	Tags   []string   `varcfg:"tags"`
	Server testServer `varcfg:"server"`
}

func TestMarshal(t *testing.T) {
	for _, test := range []struct {
		name string
		in   any
		out  string
	}{
		{
			name: "struct",
			in: testConfig{
				Title:  "demo",
				Tags:   []string{"a", "b"},
				Server: testServer{Host: "localhost", Port: 8080},
			},
			out: "title=demo\ntags=[a, b]\n\n[server]\nhost=localhost\nport=8080\n",
		},
		{
			name: "map",
			in: map[string]any{
				"b": 1,
				"a": map[string]any{"x": true},
			},
			out: "b=1\n\n[a]\nx=true\n",
		},
		{
			name: "nested collections",
			in: map[string]any{
				"list": []any{1, "two", 2.5},
				"dict": map[string]any{"k": []int{1, 2}},
			},
			out: "list=[1, two, 2.5]\n\n[dict]\nk=[1, 2]\n",
		},
		{
			name: "tag fallbacks",
			in: struct {
				A int `json:"a"`
				B int `varcfg:"-"`
				C int
				d int
			}{A: 1, B: 2, C: 3},
			out: "a=1\nC=3\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			out, err := varcfg.Marshal(test.in)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != test.out {
				t.Errorf("got %q, want %q", out, test.out)
			}
		})
	}
}

func TestMarshalErrors(t *testing.T) {
	if _, err := varcfg.Marshal(map[string]any{"f": func() {}}); err == nil {
		t.Error("expected error for func value")
	}
	if _, err := varcfg.Marshal(42); err == nil {
		t.Error("expected error for scalar top level")
	}
	if _, err := varcfg.Marshal(map[int]int{1: 1}); err == nil {
		t.Error("expected error for non-string map key")
	}
}

func TestUnmarshalStruct(t *testing.T) {
	var out testConfig
	data := "title=demo\ntags=[a, b]\n[server]\nhost=localhost\nport=8080\n"
	if err := varcfg.Unmarshal([]byte(data), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := testConfig{
		Title:  "demo",
		Tags:   []string{"a", "b"},
		Server: testServer{Host: "localhost", Port: 8080},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %#v, want %#v", out, want)
	}
}

func TestUnmarshalSnakeCase(t *testing.T) {
	var out struct {
		MaxRetries int
	}
	if err := varcfg.Unmarshal([]byte("max_retries=3\n"), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d", out.MaxRetries)
	}
}

func TestUnmarshalMap(t *testing.T) {
	var out map[string]map[string]any
	if err := varcfg.Unmarshal([]byte("top=1\n[s]\nk=2.5\n"), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := map[string]map[string]any{
		"":  {"top": int64(1)},
		"s": {"k": 2.5},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %#v, want %#v", out, want)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	var cfg testConfig
	if err := varcfg.Unmarshal([]byte("nope=1\n"), &cfg); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("err = %v", err)
	}
	if err := varcfg.Unmarshal([]byte("[server]\nport=abc\n"), &cfg); err == nil || !strings.Contains(err.Error(), "cannot unmarshal") {
		t.Errorf("err = %v", err)
	}
	if err := varcfg.Unmarshal([]byte("a=1\n"), testConfig{}); err == nil {
		t.Error("expected error for non-pointer target")
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := testConfig{
		Title:  "round trip",
		Debug:  true,
		Tags:   []string{"x y", "z"},
		Server: testServer{Host: "h", Port: 1},
	}
	data, err := varcfg.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out testConfig
	if err := varcfg.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("got %#v, want %#v", out, in)
	}
}

func TestSetAny(t *testing.T) {
	store := varcfg.NewStore()
	if err := store.SetAny("", "list", []int{1, 2}); err != nil {
		t.Fatalf("SetAny: %v", err)
	}
	if err := store.SetAny("s", "m", map[string]bool{"on": true}); err != nil {
		t.Fatalf("SetAny: %v", err)
	}
	want := "list=[1, 2]\n\n[s]\nm={ \"on\": true }\n"
	if got := varcfg.Encode(store); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if err := store.SetAny("", "bad", make(chan int)); err == nil {
		t.Error("expected error for chan value")
	}
}
