package formulation

import (
	"math"
	"time"

	"github.com/dmorales/batch-records-api/internal/domain"
)

// TimeResult horas y minutos trabajados entre dos horas del mismo día.
type TimeResult struct {
	StartTime     string
	EndTime       string
	HoursWorked   float64
	MinutesWorked int
}

// CalculateTime calcula el tiempo de producción entre startTime y
// endTime en formato HH:MM. La hora final debe ser posterior a la
// inicial (no se soportan turnos que crucen medianoche).
func CalculateTime(startTime, endTime string) (*TimeResult, error) {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidInput
	}

	hours := end.Sub(start).Hours()
	return &TimeResult{
		StartTime:     startTime,
		EndTime:       endTime,
		HoursWorked:   math.Round(hours*100) / 100,
		MinutesWorked: int(math.Round(hours * 60)),
	}, nil
}
