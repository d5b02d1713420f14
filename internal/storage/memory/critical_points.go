package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

// Catalog is the in-process critical point store, same contract as the
// Postgres adapter. The catalog is read-only at runtime; Add mirrors the
// seed step.
type Catalog struct {
	mu     sync.RWMutex
	points []*domain.CriticalPoint
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Add(p *domain.CriticalPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Size == 0 {
		p.Size = p.DangerLevel.MarkerSize()
	}
	cp := *p
	c.points = append(c.points, &cp)
}

func (c *Catalog) List(ctx context.Context, filter domain.CriticalPointFilter) ([]*domain.CriticalPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return byAccidentCount(c.filter(func(p *domain.CriticalPoint) bool {
		if !p.Active {
			return false
		}
		if filter.Department != "" && p.Department != filter.Department {
			return false
		}
		if filter.Municipality != "" && p.Municipality != filter.Municipality {
			return false
		}
		if len(filter.DangerLevels) > 0 && !containsLevel(filter.DangerLevels, p.DangerLevel) {
			return false
		}
		if filter.Visible != nil && p.Visible != *filter.Visible {
			return false
		}
		return true
	})), nil
}

func (c *Catalog) FindByBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.CriticalPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return byAccidentCount(c.filter(func(p *domain.CriticalPoint) bool {
		return p.Active && p.Visible && box.Contains(p.Latitude, p.Longitude)
	})), nil
}

func (c *Catalog) FindByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.CriticalPoint, error) {
	const op = "memory.Catalog.FindByRadius"

	if radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidQuery)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return byAccidentCount(c.filter(func(p *domain.CriticalPoint) bool {
		return p.Active && p.Visible &&
			geo.DistanceKm(lat, lng, p.Latitude, p.Longitude) <= radiusKm
	})), nil
}

func (c *Catalog) Statistics(ctx context.Context) (*domain.CriticalPointStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stats domain.CriticalPointStats
	perLevel := make(map[domain.DangerLevel]*domain.DangerLevelStats)
	perDept := make(map[string]int64)

	for _, p := range c.points {
		if !p.Active {
			continue
		}
		stats.Total++

		ls, ok := perLevel[p.DangerLevel]
		if !ok {
			ls = &domain.DangerLevelStats{Level: p.DangerLevel}
			perLevel[p.DangerLevel] = ls
		}
		ls.Count++
		ls.TotalAccidents += int64(p.AccidentCount)
		ls.TotalDeaths += int64(p.Deaths)
		ls.TotalInjuries += int64(p.Injuries)

		if p.Department != "" {
			perDept[p.Department]++
		}
	}

	for _, ls := range perLevel {
		stats.ByLevel = append(stats.ByLevel, *ls)
	}
	sort.Slice(stats.ByLevel, func(i, j int) bool { return stats.ByLevel[i].Count > stats.ByLevel[j].Count })

	for dept, n := range perDept {
		stats.ByDepartment = append(stats.ByDepartment, domain.DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(stats.ByDepartment, func(i, j int) bool {
		if stats.ByDepartment[i].Count != stats.ByDepartment[j].Count {
			return stats.ByDepartment[i].Count > stats.ByDepartment[j].Count
		}
		return stats.ByDepartment[i].Department < stats.ByDepartment[j].Department
	})
	if len(stats.ByDepartment) > 10 {
		stats.ByDepartment = stats.ByDepartment[:10]
	}

	return &stats, nil
}

// filter copies matches so callers never hold references into the catalog.
// Callers must hold at least a read lock.
func (c *Catalog) filter(keep func(*domain.CriticalPoint) bool) []*domain.CriticalPoint {
	var out []*domain.CriticalPoint
	for _, p := range c.points {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func byAccidentCount(points []*domain.CriticalPoint) []*domain.CriticalPoint {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].AccidentCount > points[j].AccidentCount
	})
	return points
}

func containsLevel(levels []domain.DangerLevel, l domain.DangerLevel) bool {
	for _, v := range levels {
		if v == l {
			return true
		}
	}
	return false
}
