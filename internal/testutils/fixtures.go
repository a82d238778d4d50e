package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"terminal-terrace/exercise-service/internal/model/exercise"
	"terminal-terrace/exercise-service/internal/model/user"
)

// DefaultPassword is the plaintext behind every fixture user's hash unless
// WithPassword overrides it.
const DefaultPassword = "password123"

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()[:8]
	username := fmt.Sprintf("test_user_%s", uniqueID)
	email := fmt.Sprintf("test_%s@example.com", uniqueID)

	// MinCost keeps fixtures fast; production hashing uses DefaultCost.
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)

	testUser := &user.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         user.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithRole sets the role
func WithRole(role user.Role) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// WithPassword sets the password (will be hashed)
func WithPassword(password string) UserOption {
	return func(u *user.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

// ExerciseTypeID looks up the seeded row for kind.
func ExerciseTypeID(db *gorm.DB, kind exercise.Kind) uuid.UUID {
	var row exercise.ExerciseType
	if err := db.Where("name = ?", kind).First(&row).Error; err != nil {
		panic(fmt.Sprintf("Failed to load exercise type %s: %v", kind, err))
	}
	return row.ID
}

// CreateFillGapExercise inserts a fill-gap exercise owned by ownerID with the
// given sentence/answer pairs, bypassing the service layer.
func CreateFillGapExercise(db *gorm.DB, ownerID uuid.UUID, pairs ...[2]string) *exercise.Exercise {
	ex := newExercise(db, ownerID, exercise.KindFillGap)
	for i, pair := range pairs {
		sentence := exercise.FillGapSentence{
			ExerciseID:    ex.ID,
			Position:      i,
			Sentence:      pair[0],
			CorrectAnswer: pair[1],
			CreatedAt:     ex.CreatedAt,
		}
		if err := db.Create(&sentence).Error; err != nil {
			panic(fmt.Sprintf("Failed to create test sentence: %v", err))
		}
	}
	return ex
}

// CreateMultipleChoiceExercise inserts a multiple-choice exercise with one
// question per entry in questions; every question gets choices a/b/c with
// index 0 correct.
func CreateMultipleChoiceExercise(db *gorm.DB, ownerID uuid.UUID, questions ...string) *exercise.Exercise {
	ex := newExercise(db, ownerID, exercise.KindMultipleChoice)
	for i, text := range questions {
		question := exercise.MultipleChoiceQuestion{
			ExerciseID:   ex.ID,
			Position:     i,
			Question:     text,
			Choices:      datatypes.NewJSONSlice([]string{"a", "b", "c"}),
			CorrectIndex: 0,
			CreatedAt:    ex.CreatedAt,
		}
		if err := db.Create(&question).Error; err != nil {
			panic(fmt.Sprintf("Failed to create test question: %v", err))
		}
	}
	return ex
}

func newExercise(db *gorm.DB, ownerID uuid.UUID, kind exercise.Kind) *exercise.Exercise {
	now := time.Now().UTC()
	ex := &exercise.Exercise{
		OwnerID:        ownerID,
		ExerciseTypeID: ExerciseTypeID(db, kind),
		Title:          fmt.Sprintf("test %s exercise", kind),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Omit("Owner", "ExerciseType").Create(ex).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test exercise: %v", err))
	}
	return ex
}
