package mongo

import (
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOwnerFilter_AlwaysScopedToOwner(t *testing.T) {
	f := ownerFilter("u-1", "")
	if f["owner_id"] != "u-1" {
		t.Fatalf("expected owner_id filter, got %v", f)
	}
	if _, ok := f["name"]; ok {
		t.Fatalf("blank keyword must not filter by name")
	}
}

func TestOwnerFilter_KeywordIsLiteralAndCaseInsensitive(t *testing.T) {
	f := ownerFilter("u-1", "a.b*")
	re, ok := f["name"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex on name, got %T", f["name"])
	}
	if re.Options != "i" {
		t.Fatalf("expected case-insensitive option, got %q", re.Options)
	}

	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	if !compiled.MatchString("XA.B*Y") {
		t.Fatalf("pattern %q should match literal keyword", re.Pattern)
	}
	if compiled.MatchString("aXbbb") {
		t.Fatalf("pattern %q must not treat keyword as a regex", re.Pattern)
	}
	if f["owner_id"] != "u-1" {
		t.Fatalf("keyword must not drop owner scope")
	}
}
