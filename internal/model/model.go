package model

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"terminal-terrace/exercise-service/internal/model/exercise"
	"terminal-terrace/exercise-service/internal/model/user"
)

// GetModels 返回所有需要迁移的模型
func GetModels() []interface{} {
	return []interface{}{
		&user.User{},
		&exercise.ExerciseType{},
		&exercise.Exercise{},
		&exercise.FillGapSentence{},
		&exercise.MultipleChoiceQuestion{},
	}
}

func InitTable(db *gorm.DB) error {
	if err := db.AutoMigrate(GetModels()...); err != nil {
		return fmt.Errorf("数据库表迁移失败: %w", err)
	}

	return SeedExerciseTypes(db)
}

// SeedExerciseTypes inserts the fixed exercise type rows. Existing rows are
// left alone, so concurrent replicas starting at once cannot double-seed.
func SeedExerciseTypes(db *gorm.DB) error {
	kinds := exercise.Kinds()
	rows := make([]exercise.ExerciseType, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, exercise.ExerciseType{Name: kind})
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		return fmt.Errorf("写入题型失败: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("[SeedExerciseTypes] seeded %d exercise types", result.RowsAffected)
	}
	return nil
}
