package service

import (
	"context"
	"errors"

	"shop-backend/internal/domains/location/model"
	"shop-backend/internal/domains/location/repository"
)

// hierarchy gom Level Resolver và Consistency Guard.
// Cả hai luôn đọc store, không bao giờ đọc cache.
type hierarchy struct {
	provinces repository.ProvinceRepository
}

// resolveLevel tính level của node con từ parent.
//   - parent nil          -> LevelDefault
//   - parent không tồn tại, đã xóa hoặc khác country -> ParentNotFound
//   - parent là street    -> LevelExhausted
func (h *hierarchy) resolveLevel(ctx context.Context, countryID int64, parentID *int64) (model.Level, error) {
	if parentID == nil {
		return model.LevelDefault, nil
	}

	parent, err := h.provinces.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.NewParentNotFound(*parentID)
		}
		return 0, err
	}
	if parent.CountryID != countryID {
		return 0, model.NewParentNotFound(*parentID)
	}

	level, err := parent.Level.Next()
	if err != nil {
		if errors.Is(err, model.ErrLevelExhausted) {
			return 0, model.NewLevelExhausted(parent.ID)
		}
		return 0, model.NewInvalidLevel(err)
	}
	return level, nil
}

// checkSelfParent chạy trước resolveLevel ở edit để báo lỗi rõ hơn ParentNotFound/LevelExhausted.
func checkSelfParent(node *model.Province, newParentID *int64) error {
	if node.ID != 0 && newParentID != nil && *newParentID == node.ID {
		return model.NewSelfParent(node.ID)
	}
	return nil
}

// validateMutation kiểm tra self-parent, duplicate sibling và đổi level khi còn con.
// node.ID == 0 nghĩa là add: chưa có con và không thể tự làm parent.
func (h *hierarchy) validateMutation(ctx context.Context, node *model.Province, newParentID *int64, newName string, newLevel model.Level) error {
	if err := checkSelfParent(node, newParentID); err != nil {
		return err
	}

	dup, err := h.provinces.SiblingExists(ctx, node.CountryID, newParentID, newName, node.ID)
	if err != nil {
		return err
	}
	if dup {
		return model.NewDuplicateSibling(newName)
	}

	if node.ID == 0 || newLevel == node.Level {
		return nil
	}
	hasChildren, err := h.provinces.HasChildren(ctx, node.ID)
	if err != nil {
		return err
	}
	if hasChildren {
		return model.NewHasChildren(node.ID)
	}
	return nil
}
