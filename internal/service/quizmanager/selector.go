package quizmanager

import (
	"context"
	"fmt"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/domain/repository"
	"github.com/SiddharthSampath/Trivia-App/internal/logging"
)

// Selector выбирает следующий случайный вопрос викторины среди ещё не заданных
type Selector struct {
	questionRepo repository.QuestionRepository
	rnd          RandomSource
}

// NewSelector создаёт селектор; nil rnd означает глобальный генератор
func NewSelector(questionRepo repository.QuestionRepository, rnd RandomSource) *Selector {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Selector{
		questionRepo: questionRepo,
		rnd:          rnd,
	}
}

// NextQuestion возвращает случайный вопрос из пула selector, ID которого нет в previousIDs.
// Если пул исчерпан, возвращает (nil, nil) — викторина окончена, это не ошибка.
func (s *Selector) NextQuestion(ctx context.Context, selector CategorySelector, previousIDs []uint) (*entity.Question, error) {
	pool, err := s.candidatePool(ctx, selector)
	if err != nil {
		return nil, err
	}

	remaining := excludeAsked(pool, previousIDs)

	logger := logging.FromContext(ctx)
	logger.Debug().
		Bool("all_categories", selector.All).
		Str("category", selector.CategoryID).
		Int("pool", len(pool)).
		Int("remaining", len(remaining)).
		Msg("quiz candidate pool built")

	if len(remaining) == 0 {
		return nil, nil
	}

	picked := remaining[s.rnd.IntN(len(remaining))]
	return &picked, nil
}

func (s *Selector) candidatePool(ctx context.Context, selector CategorySelector) ([]entity.Question, error) {
	if selector.All {
		questions, err := s.questionRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load quiz pool: %w", err)
		}
		return questions, nil
	}

	questions, err := s.questionRepo.ListByCategory(ctx, selector.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz pool for category %s: %w", selector.CategoryID, err)
	}
	return questions, nil
}

// excludeAsked убирает уже заданные вопросы; проверка членства через map, O(1) на кандидата
func excludeAsked(pool []entity.Question, previousIDs []uint) []entity.Question {
	if len(previousIDs) == 0 {
		return pool
	}

	asked := make(map[uint]struct{}, len(previousIDs))
	for _, id := range previousIDs {
		asked[id] = struct{}{}
	}

	remaining := make([]entity.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := asked[q.ID]; !ok {
			remaining = append(remaining, q)
		}
	}
	return remaining
}
