package walking

import (
	"context"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/model"
	"dog_walking/internal/validator"
)

type WalkService struct {
	dogs  domain.DogRepo
	walks domain.WalkRepo
}

func NewWalkService(dogs domain.DogRepo, walks domain.WalkRepo) (*WalkService, error) {
	if dogs == nil {
		return nil, missingArg("dog repository")
	}
	if walks == nil {
		return nil, missingArg("walk repository")
	}
	return &WalkService{dogs: dogs, walks: walks}, nil
}

func (s *WalkService) Add(ctx context.Context, in *dto.Walk) (uint, error) {
	if in == nil {
		return 0, missingArg("walk")
	}
	if err := validator.Walk(in); err != nil {
		return 0, err
	}
	if err := s.requireDog(ctx, in.DogID); err != nil {
		return 0, err
	}

	walk := &model.Walk{
		DogID:           in.DogID,
		WalkDate:        in.WalkDate,
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.walks.Add(ctx, walk); err != nil {
		return 0, err
	}
	return walk.ID, nil
}

func (s *WalkService) GetAll(ctx context.Context) ([]dto.Walk, error) {
	rows, err := s.walks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toWalkDto), nil
}

// Search ищет прогулки по имени собаки.
func (s *WalkService) Search(ctx context.Context, term string) ([]dto.Walk, error) {
	t, ok := searchTerm(term)
	if !ok {
		return s.GetAll(ctx)
	}
	rows, err := s.walks.Search(ctx, t)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toWalkDto), nil
}

func (s *WalkService) GetByDog(ctx context.Context, dogID uint) ([]dto.Walk, error) {
	rows, err := s.walks.GetByDog(ctx, dogID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows, toWalkDto), nil
}

func (s *WalkService) GetByID(ctx context.Context, id uint) (*dto.Walk, error) {
	walk, err := s.walks.GetByID(ctx, id)
	if err != nil || walk == nil {
		return nil, err
	}
	out := toWalkDto(*walk)
	return &out, nil
}

func (s *WalkService) Update(ctx context.Context, id uint, in *dto.Walk) error {
	if in == nil {
		return missingArg("walk")
	}
	if err := validator.Walk(in); err != nil {
		return err
	}

	walk, err := s.walks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if walk == nil {
		return notFound("walk", id)
	}
	if err := s.requireDog(ctx, in.DogID); err != nil {
		return err
	}

	walk.DogID = in.DogID
	walk.WalkDate = in.WalkDate
	walk.DurationMinutes = in.DurationMinutes
	// подгруженная собака может уже не совпадать с DogID
	walk.Dog = nil
	return s.walks.Update(ctx, walk)
}

func (s *WalkService) Delete(ctx context.Context, id uint) error {
	walk, err := s.walks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if walk == nil {
		return notFound("walk", id)
	}
	return s.walks.SoftDelete(ctx, walk)
}

func (s *WalkService) requireDog(ctx context.Context, dogID uint) error {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		return err
	}
	if dog == nil {
		return unknownRef("dog", dogID)
	}
	return nil
}
