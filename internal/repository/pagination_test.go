package repository

import "testing"

func TestNormalize(t *testing.T) {
	req := PageRequest{Page: -3, Size: 0, SortBy: "password", Direction: "DROP TABLE"}
	got := req.Normalize("created_at", "status")

	if got.Page != 0 {
		t.Errorf("Page = %d, want 0", got.Page)
	}
	if got.Size != 10 {
		t.Errorf("Size = %d, want 10", got.Size)
	}
	if got.SortBy != "created_at" {
		t.Errorf("SortBy = %q, want created_at (whitelist)", got.SortBy)
	}
	if got.Direction != "desc" {
		t.Errorf("Direction = %q, want desc", got.Direction)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	req := PageRequest{Page: 2, Size: 25, SortBy: "status", Direction: "asc"}
	got := req.Normalize("created_at", "status")

	if got != req {
		t.Errorf("Normalize changed valid request: %+v", got)
	}
}

func TestNormalizeCapsSize(t *testing.T) {
	got := PageRequest{Size: 5000}.Normalize()
	if got.Size != 10 {
		t.Errorf("Size = %d, want 10", got.Size)
	}
}

func TestOrder(t *testing.T) {
	req := PageRequest{SortBy: "created_at", Direction: "desc"}
	if got := req.Order(); got != "created_at desc" {
		t.Errorf("Order() = %q", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}
