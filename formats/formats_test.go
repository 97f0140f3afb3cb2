package formats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonschema/ir"
)

type formatCase struct {
	in    string
	valid bool
}

var formatCases = map[string][]formatCase{
	"date-time": {
		{"1963-06-19T08:30:06.283185Z", true},
		{"1963-06-19t08:30:06z", true},
		{"1990-12-31T15:59:60-08:00", true},
		{"1998-12-31T23:59:60Z", true},
		{"1998-12-31T23:58:60Z", false},
		{"1990-02-31T15:59:59.123-08:00", false},
		{"1963-06-19 08:30:06Z", false},
		{"2013-350T01:01:01", false},
	},
	"date": {
		{"2020-02-29", true},
		{"2021-02-29", false},
		{"1963-6-19", false},
		{"2020-13-01", false},
	},
	"time": {
		{"08:30:06Z", true},
		{"08:30:06.5+01:30", true},
		{"23:59:60Z", true},
		{"22:59:60-01:00", true},
		{"08:30:06", false},
		{"24:00:00Z", false},
		{"08:30:06.Z", false},
	},
	"duration": {
		{"P4DT12H30M5S", true},
		{"P1Y", true},
		{"PT1M", true},
		{"P2W", true},
		{"P", false},
		{"PT", false},
		{"P1D2H", false},
		{"P1M1Y", false},
		{"P1W1D", false},
	},
	"email": {
		{"joe.bloggs@example.com", true},
		{`"joe bloggs"@example.com`, true},
		{"joe@[127.0.0.1]", true},
		{"joe@[IPv6:::1]", true},
		{".joe@example.com", false},
		{"joe..bloggs@example.com", false},
		{"joe", false},
		{"실례@example.com", false},
	},
	"idn-email": {
		{"실례@실례.테스트", true},
		{"joe@example.com", true},
		{"2962", false},
	},
	"hostname": {
		{"www.example.com", true},
		{"xn--4gbwdl.xn--wgbh1c", true},
		{"-a.example.com", false},
		{"a_b.example.com", false},
		{"", false},
	},
	"idn-hostname": {
		{"실례.테스트", true},
		{"example.com", true},
		{"-실례.테스트", false},
		{"a..b", false},
	},
	"ipv4": {
		{"192.168.0.1", true},
		{"256.0.0.1", false},
		{"087.10.0.1", false},
		{"::1", false},
	},
	"ipv6": {
		{"::1", true},
		{"2001:db8::ff00:42:8329", true},
		{"fe80::1%eth0", false},
		{"12345::", false},
		{"127.0.0.1", false},
	},
	"uri": {
		{"http://foo.bar/?baz=qux#quux", true},
		{"urn:isbn:0451450523", true},
		{"//foo.bar/path", false},
		{"http://example.com/a b", false},
		{`http://example.com\path`, false},
		{"http://ƒøø.com", false},
	},
	"uri-reference": {
		{"/abc", true},
		{"#fragment", true},
		{`\\WINDOWS\fileshare`, false},
	},
	"iri": {
		{"http://ƒøø.ßår/?∂éœ=πîx#πîüx", true},
		{"/relative", false},
	},
	"iri-reference": {
		{"#ƒrägmênt", true},
		{"\\\\WINDOWS\\filëßåré", false},
	},
	"uri-template": {
		{"http://example.com/dictionary/{term:1}/{term}", true},
		{"{+path}/here{?x,y*}", true},
		{"http://example.com/dictionary/{term:1}/{term", false},
		{"{}", false},
		{"x}", false},
	},
	"uuid": {
		{"2eb8aa08-aa98-11ea-b4aa-73b441d16380", true},
		{"2EB8AA08-AA98-11EA-B4AA-73B441D16380", true},
		{"2eb8aa08aa9811eab4aa73b441d16380", false},
		{"{2eb8aa08-aa98-11ea-b4aa-73b441d16380}", false},
		{"2eb8aa08-aa98-11ea-b4aa-73b441d1638g", false},
	},
	"json-pointer": {
		{"", true},
		{"/foo/0", true},
		{"/a~1b/~0", true},
		{"/foo/~2", false},
		{"foo", false},
	},
	"relative-json-pointer": {
		{"1", true},
		{"0/foo/bar", true},
		{"2#", true},
		{"01/a", false},
		{"/foo", false},
		{"-1/foo", false},
		{"1foo", false},
	},
	"regex": {
		{`^[a-z]+\d*$`, true},
		{`^(abc]`, false},
	},
}

func TestBuiltinFormats(t *testing.T) {
	if diff := cmp.Diff(len(builtin), len(formatCases)); diff != "" {
		t.Errorf("untested formats (-builtin +cases):\n%s", diff)
	}
	reg := Default()
	for name, cases := range formatCases {
		f, ok := reg.Lookup(name)
		if !ok {
			t.Errorf("format %q not registered", name)
			continue
		}
		for _, c := range cases {
			ok, msg := f.Validate(ir.FromString(c.in))
			if ok != c.valid {
				t.Errorf("%s(%q) = %v (%s), want %v", name, c.in, ok, msg, c.valid)
			}
			if !ok && msg == "" {
				t.Errorf("%s(%q) failed without a message", name, c.in)
			}
		}
	}
}

func TestNonStringsPass(t *testing.T) {
	reg := Default()
	for _, name := range Names() {
		f, _ := reg.Lookup(name)
		for _, n := range []*ir.Node{ir.FromInt(3), ir.Null(), ir.FromBool(false), ir.FromStrings([]string{"x"})} {
			if ok, msg := f.Validate(n); !ok {
				t.Errorf("%s(%s) failed: %s", name, ir.MustJSON(n), msg)
			}
		}
	}
}

func TestExpr(t *testing.T) {
	tcs := []struct {
		name  string
		expr  string
		in    *ir.Node
		valid bool
	}{
		{"string length", `type != "string" || len(value) <= 3`, ir.FromString("abc"), true},
		{"string too long", `type != "string" || len(value) <= 3`, ir.FromString("abcd"), false},
		{"non string skipped", `type != "string" || len(value) <= 3`, ir.FromInt(12345), true},
		{"matches", `type == "string" && value matches "^[a-z]+$"`, ir.FromString("abc"), true},
		{"matches fails", `type == "string" && value matches "^[a-z]+$"`, ir.FromString("aBc"), false},
		{"matches non string", `type == "string" && value matches "^[a-z]+$"`, ir.FromInt(1), false},
		{"builtin function", `type != "string" || value == lower(value)`, ir.FromString("abc"), true},
		{"builtin function fails", `type != "string" || value == lower(value)`, ir.FromString("Abc"), false},
		{"arithmetic", `type == "integer" && value % 2 == 0`, ir.FromInt(4), true},
		{"odd", `type == "integer" && value % 2 == 0`, ir.FromInt(3), false},
		{"float", `value > 1.5`, ir.FromFloat(2.25), true},
		{"builtin", `isFormat("uuid", value)`, ir.FromString("2eb8aa08-aa98-11ea-b4aa-73b441d16380"), true},
		{"builtin fails", `isFormat("ipv4", value)`, ir.FromString("::1"), false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Expr(tc.expr)
			if err != nil {
				t.Fatal(err)
			}
			ok, msg := f.Validate(tc.in)
			if ok != tc.valid {
				t.Errorf("got %v (%s), want %v", ok, msg, tc.valid)
			}
		})
	}
}

func TestExprErrors(t *testing.T) {
	if _, err := Expr(`value +`); err == nil {
		t.Errorf("expected compile error")
	}
	if _, err := Expr(`value matches "("`); err == nil {
		t.Errorf("expected invalid regexp to be rejected")
	}
	if _, err := Expr(`"not a bool"`); err == nil {
		t.Errorf("expected non boolean expression to be rejected")
	}
	f, err := Expr(`isFormat("nope", value)`)
	if err != nil {
		t.Fatal(err)
	}
	if ok, msg := f.Validate(ir.FromString("x")); ok || msg == "" {
		t.Errorf("expected runtime error, got %v %q", ok, msg)
	}
}
