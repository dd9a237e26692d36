package workers

import (
	"strings"
	"testing"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDigestText_CountsHotAndQualified(t *testing.T) {
	leads := []*domain.Lead{
		{Name: "A", Phone: "+1", Status: domain.StatusHot, LeadScore: 80},
		{Name: "B", Phone: "+2", Status: domain.StatusQualified, LeadScore: 55},
		{Name: "C", Phone: "+3", Status: domain.StatusNew, LeadScore: 10},
	}
	text := digestText(leads)
	assert.Contains(t, text, "1 hot, 1 qualified")
	assert.Equal(t, 3, strings.Count(text, "-"), "every lead should get a summary line")
}

func TestDailyDigestWorker_BoundaryDefaultsAndUpdates(t *testing.T) {
	w := NewDailyDigestWorker(nil, nil)

	before := w.boundaryFor("tenant-1")
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), before, time.Minute)

	marker := time.Now()
	w.recordBoundary("tenant-1", marker)
	assert.Equal(t, marker, w.boundaryFor("tenant-1"))

	// a different tenant still gets its own independent default
	other := w.boundaryFor("tenant-2")
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), other, time.Minute)
}
