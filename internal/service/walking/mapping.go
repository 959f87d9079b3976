// Package walking - сервисы клиентов, собак, прогулок и входа.
// Сервисы проверяют dto, переводят в модели, вызывают репозитории и переводят обратно.
package walking

import (
	"fmt"
	"strings"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/model"
)

func toClientDto(c model.Client) dto.Client {
	return dto.Client{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
	}
}

func toDogDto(d model.Dog) dto.Dog {
	out := dto.Dog{
		ID:       d.ID,
		ClientID: d.ClientID,
		Name:     d.Name,
		Breed:    d.Breed,
		Age:      d.Age,
	}
	if d.Client != nil {
		out.ClientName = d.Client.Name
	}
	return out
}

func toWalkDto(w model.Walk) dto.Walk {
	out := dto.Walk{
		ID:              w.ID,
		DogID:           w.DogID,
		WalkDate:        w.WalkDate,
		DurationMinutes: w.DurationMinutes,
	}
	if w.Dog != nil {
		out.DogName = w.Dog.Name
		out.ClientID = w.Dog.ClientID
		if w.Dog.Client != nil {
			out.ClientName = w.Dog.Client.Name
		}
	}
	return out
}

func mapAll[M any, D any](rows []M, f func(M) D) []D {
	out := make([]D, 0, len(rows))
	for _, r := range rows {
		out = append(out, f(r))
	}
	return out
}

// searchTerm обрезает пробелы; ok=false для пустого запроса.
func searchTerm(term string) (string, bool) {
	t := strings.TrimSpace(term)
	return t, t != ""
}

func missingArg(name string) error {
	return fmt.Errorf("%w: %s", domain.ErrMissingArgument, name)
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", domain.ErrNotFound, entity, id)
}

// unknownRef - ссылка на отсутствующую или удаленную строку.
func unknownRef(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d not found", domain.ErrInvalidArgument, entity, id)
}
