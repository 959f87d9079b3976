package walking

import (
	"context"
	"fmt"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/model"
	"dog_walking/internal/validator"
)

type DogService struct {
	clients domain.ClientRepo
	dogs    domain.DogRepo
	walks   domain.WalkRepo
}

func NewDogService(clients domain.ClientRepo, dogs domain.DogRepo, walks domain.WalkRepo) (*DogService, error) {
	if clients == nil {
		return nil, missingArg("client repository")
	}
	if dogs == nil {
		return nil, missingArg("dog repository")
	}
	if walks == nil {
		return nil, missingArg("walk repository")
	}
	return &DogService{clients: clients, dogs: dogs, walks: walks}, nil
}

func (s *DogService) Add(ctx context.Context, in *dto.Dog) (uint, error) {
	if in == nil {
		return 0, missingArg("dog")
	}
	if err := validator.Dog(in); err != nil {
		return 0, err
	}
	if err := s.requireOwner(ctx, in.ClientID); err != nil {
		return 0, err
	}

	dog := &model.Dog{
		ClientID: in.ClientID,
		Name:     in.Name,
		Breed:    in.Breed,
		Age:      in.Age,
	}
	if err := s.dogs.Add(ctx, dog); err != nil {
		return 0, err
	}
	return dog.ID, nil
}

func (s *DogService) GetAll(ctx context.Context) ([]dto.Dog, error) {
	rows, err := s.dogs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toDogDto), nil
}

func (s *DogService) Search(ctx context.Context, term string) ([]dto.Dog, error) {
	t, ok := searchTerm(term)
	if !ok {
		return s.GetAll(ctx)
	}
	rows, err := s.dogs.Search(ctx, t)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toDogDto), nil
}

func (s *DogService) GetByClient(ctx context.Context, clientID uint) ([]dto.Dog, error) {
	rows, err := s.dogs.GetByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toDogDto), nil
}

func (s *DogService) GetByID(ctx context.Context, id uint) (*dto.Dog, error) {
	dog, err := s.dogs.GetByID(ctx, id)
	if err != nil || dog == nil {
		return nil, err
	}
	out := toDogDto(*dog)
	return &out, nil
}

func (s *DogService) Update(ctx context.Context, id uint, in *dto.Dog) error {
	if in == nil {
		return missingArg("dog")
	}
	if err := validator.Dog(in); err != nil {
		return err
	}

	dog, err := s.dogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if dog == nil {
		return notFound("dog", id)
	}
	if err := s.requireOwner(ctx, in.ClientID); err != nil {
		return err
	}

	dog.ClientID = in.ClientID
	dog.Name = in.Name
	dog.Breed = in.Breed
	dog.Age = in.Age
	dog.Client = nil
	return s.dogs.Update(ctx, dog)
}

// requireOwner возвращает ошибку, если клиента нет или он удален.
func (s *DogService) requireOwner(ctx context.Context, clientID uint) error {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return unknownRef("client", clientID)
	}
	return nil
}

// Delete мягко удаляет собаку, если у нее нет активных прогулок.
func (s *DogService) Delete(ctx context.Context, id uint) error {
	dog, err := s.dogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if dog == nil {
		return notFound("dog", id)
	}

	walks, err := s.walks.GetByDog(ctx, id)
	if err != nil {
		return err
	}
	if len(walks) > 0 {
		return fmt.Errorf("%w: dog %q still has %d walk(s), delete them first",
			domain.ErrConflict, dog.Name, len(walks))
	}
	return s.dogs.SoftDelete(ctx, dog)
}
