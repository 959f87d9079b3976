package walking

import (
	"context"
	"fmt"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/model"
	"dog_walking/internal/validator"
)

type ClientService struct {
	clients domain.ClientRepo
	dogs    domain.DogRepo
}

func NewClientService(clients domain.ClientRepo, dogs domain.DogRepo) (*ClientService, error) {
	if clients == nil {
		return nil, missingArg("client repository")
	}
	if dogs == nil {
		return nil, missingArg("dog repository")
	}
	return &ClientService{clients: clients, dogs: dogs}, nil
}

func (s *ClientService) Add(ctx context.Context, in *dto.Client) (uint, error) {
	if in == nil {
		return 0, missingArg("client")
	}
	if err := validator.Client(in); err != nil {
		return 0, err
	}

	client := &model.Client{
		Name:  in.Name,
		Phone: in.Phone,
	}
	if err := s.clients.Add(ctx, client); err != nil {
		return 0, err
	}
	return client.ID, nil
}

func (s *ClientService) GetAll(ctx context.Context) ([]dto.Client, error) {
	rows, err := s.clients.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toClientDto), nil
}

// Search при пустом запросе возвращает GetAll.
func (s *ClientService) Search(ctx context.Context, term string) ([]dto.Client, error) {
	t, ok := searchTerm(term)
	if !ok {
		return s.GetAll(ctx)
	}
	rows, err := s.clients.Search(ctx, t)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toClientDto), nil
}

// GetByID возвращает nil, nil, если клиента нет.
func (s *ClientService) GetByID(ctx context.Context, id uint) (*dto.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil || client == nil {
		return nil, err
	}
	out := toClientDto(*client)
	return &out, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, in *dto.Client) error {
	if in == nil {
		return missingArg("client")
	}
	if err := validator.Client(in); err != nil {
		return err
	}

	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return notFound("client", id)
	}

	client.Name = in.Name
	client.Phone = in.Phone
	return s.clients.Update(ctx, client)
}

// Delete мягко удаляет клиента, если у него нет активных собак.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return notFound("client", id)
	}

	dogs, err := s.dogs.GetByClient(ctx, id)
	if err != nil {
		return err
	}
	if len(dogs) > 0 {
		return fmt.Errorf("%w: client %q still has %d dog(s), delete them first",
			domain.ErrConflict, client.Name, len(dogs))
	}
	return s.clients.SoftDelete(ctx, client)
}
