package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/exercise-service/config"
	"terminal-terrace/exercise-service/internal/model"
	"terminal-terrace/exercise-service/pkg/database"
)

const serviceName = "exercise-service"

var (
	DB *gorm.DB
)

// InitDatabase 连接数据库、迁移表结构并写入题型，失败直接 panic
func InitDatabase() {
	db, err := Open(config.Conf.Database)
	if err != nil {
		panic(err)
	}

	if err := model.InitTable(db); err != nil {
		panic(err)
	}

	DB = db
}

// Open 根据 driver 选择数据库
func Open(databaseConf config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "warn"
	}

	switch databaseConf.Driver {
	case config.DriverPostgres, "":
		return database.InitPostgres(
			&database.PostgresConfig{
				ServiceName:     serviceName,
				Username:        databaseConf.Username,
				Password:        databaseConf.Password,
				Host:            databaseConf.Host,
				Port:            databaseConf.Port,
				Database:        databaseConf.Database,
				SSLMode:         databaseConf.SSLMode,
				LogLevel:        logLevel,
				MaxIdleConns:    databaseConf.MaxIdleConns,
				MaxOpenConns:    databaseConf.MaxOpenConns,
				ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
			},
		)
	case config.DriverSQLite:
		return database.InitSQLite(
			&database.SQLiteConfig{
				ServiceName: serviceName,
				Path:        databaseConf.Path,
				LogLevel:    logLevel,
			},
		)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", databaseConf.Driver)
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return DB
}
