package repository

import (
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository handles member account data access
type MemberRepository interface {
	Create(member *domain.Member) error
	FindByID(id uint64) (*domain.Member, error)
	FindByUsername(username string) (*domain.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(member *domain.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		return common.NewStorageError("member.create", err)
	}
	return nil
}

func (r *memberRepository) FindByID(id uint64) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, translateFind(err, "member.find_by_id")
	}
	return &member, nil
}

func (r *memberRepository) FindByUsername(username string) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("username = ?", username).First(&member).Error; err != nil {
		return nil, translateFind(err, "member.find_by_username")
	}
	return &member, nil
}
