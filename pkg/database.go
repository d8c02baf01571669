package evtfilter

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

const (
	channelTypesTable   = "ChannelTypes"
	channelModulesTable = "ChannelModules"
)

type ChannelTypeEntry struct {
	Channel int64  `db:"channel"`
	Type    string `db:"type"`
}

type ChannelModuleEntry struct {
	Channel int64 `db:"channel"`
	SM      int   `db:"sm"`
	MM      int   `db:"mm"`
}

// ConnectToDatabase opens the mapping database. For the sqlite driver
// dbname is the database file path and the remaining arguments are unused.
func ConnectToDatabase(driver string, user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	switch driver {
	case "", "mysql":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
		return sqlx.Connect("mysql", dbURI)
	case "sqlite":
		return sqlx.Connect("sqlite", dbname)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// LoadMappingFromDB reads the channel type and module tables valid for
// runNumber.
func LoadMappingFromDB(db *sqlx.DB, runNumber int) (Mapping, error) {
	chTypes, err := getChannelTypesFromDB(db, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting channel types from database: %w", err)
		logger.Error(errMessage.Error())
		return Mapping{}, errMessage
	}
	modules, err := getModulesFromDB(db, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting module map from database: %w", err)
		logger.Error(errMessage.Error())
		return Mapping{}, errMessage
	}
	return Mapping{ChannelTypes: chTypes, Modules: modules}, nil
}

func getChannelTypesFromDB(db *sqlx.DB, runNumber int) (ChannelTypeMap, error) {
	query := "SELECT channel, type FROM ChannelTypes WHERE MinRun <= ? AND MaxRun >= ? ORDER BY channel"
	if configuration.Verbosity > 0 {
		logger.Info("Channel types read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s [%d]", query, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		return nil, &ErrQueryDatabase{TableName: channelTypesTable, Err: err}
	}
	defer rows.Close()

	chTypes := make(ChannelTypeMap)
	for rows.Next() {
		result := ChannelTypeEntry{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		chType, err := ParseChannelType(result.Type)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", result.Channel, err)
		}
		channel := ChannelID(result.Channel)
		chTypes[channel] = append(chTypes[channel], chType)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrQueryDatabase{TableName: channelTypesTable, Err: err}
	}
	return chTypes, nil
}

func getModulesFromDB(db *sqlx.DB, runNumber int) (ModuleMap[ModuleID], error) {
	query := "SELECT channel, sm, mm FROM ChannelModules WHERE MinRun <= ? AND MaxRun >= ? ORDER BY channel"
	if configuration.Verbosity > 0 {
		logger.Info("Module map read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s [%d]", query, runNumber)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		return nil, &ErrQueryDatabase{TableName: channelModulesTable, Err: err}
	}
	defer rows.Close()

	modules := make(ModuleMap[ModuleID])
	for rows.Next() {
		result := ChannelModuleEntry{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		modules[ChannelID(result.Channel)] = ModuleID{SM: result.SM, MM: result.MM}
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrQueryDatabase{TableName: channelModulesTable, Err: err}
	}
	return modules, nil
}
