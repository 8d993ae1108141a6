package ingest

import (
	"strings"
	"testing"
)

func TestBuildFactQuery(t *testing.T) {
	q := buildFactQuery("sales_facts")
	if !strings.HasPrefix(q, "SELECT ") {
		t.Fatalf("unexpected query: %s", q)
	}
	if !strings.Contains(q, `FROM "sales_facts"`) {
		t.Errorf("table not quoted: %s", q)
	}
	if !strings.Contains(q, `"dollar_sales_year_ago"`) {
		t.Errorf("year-ago column missing: %s", q)
	}
	if !strings.Contains(q, "ORDER BY week_ending") {
		t.Errorf("ordering missing: %s", q)
	}

	// Identifier quoting defuses injection through the table name.
	q = buildFactQuery(`facts"; drop table x; --`)
	if strings.Contains(q, "drop table x") && !strings.Contains(q, `"facts""; drop table x; --"`) {
		t.Errorf("table name not sanitized: %s", q)
	}
}
