package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/leoppro/tiny-orders/entity"
)

const cockroachSerialNormalization = "SET LOCAL serial_normalization = sql_sequence"

// columnTypes holds the dialect specific column definitions of the schema.
type columnTypes struct {
	serialKey string
	key       string
	integer   string
	shortText string
	longText  string
	timestamp string
}

var dialectColumnTypes = map[string]columnTypes{
	dialectPostgres: {
		serialKey: "BIGSERIAL PRIMARY KEY",
		key:       "BIGINT NOT NULL PRIMARY KEY",
		integer:   "BIGINT NOT NULL",
		shortText: "VARCHAR(255) NOT NULL",
		longText:  "TEXT NOT NULL",
		timestamp: "TIMESTAMP NOT NULL",
	},
	dialectMySQL: {
		serialKey: "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
		key:       "BIGINT NOT NULL PRIMARY KEY",
		integer:   "BIGINT NOT NULL",
		shortText: "VARCHAR(255) NOT NULL",
		longText:  "TEXT NOT NULL",
		timestamp: "DATETIME(6) NOT NULL",
	},
	dialectSQLite: {
		serialKey: "INTEGER PRIMARY KEY AUTOINCREMENT",
		key:       "INTEGER NOT NULL PRIMARY KEY",
		integer:   "INTEGER NOT NULL",
		shortText: "TEXT NOT NULL",
		longText:  "TEXT NOT NULL",
		timestamp: "TIMESTAMP NOT NULL",
	},
}

// SetupSchema drops and recreates every table of the schema.
func (s *Store) SetupSchema(ctx context.Context) error {
	for _, table := range s.tables.All() {
		if err := s.RecreateTable(ctx, table); err != nil {
			return err
		}
	}

	return nil
}

// DropSchema drops every table of the schema that exists.
func (s *Store) DropSchema(ctx context.Context) error {
	for _, table := range s.tables.All() {
		if err := s.execDDL(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return err
		}

		s.logInfo(logMsgTableDropped, logAttrTable, table)
	}

	return nil
}

// RecreateTable drops table if it exists and creates it empty.
func (s *Store) RecreateTable(ctx context.Context, table string) error {
	ddl, err := s.createStatement(table)
	if err != nil {
		return err
	}

	if err = s.execDDL(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return err
	}

	s.logInfo(logMsgTableDropped, logAttrTable, table)

	if s.cockroach {
		err = s.execDDLInTx(ctx, cockroachSerialNormalization, ddl)
	} else {
		err = s.execDDL(ctx, ddl)
	}

	if err != nil {
		return err
	}

	s.logInfo(logMsgTableCreated, logAttrTable, table)

	return nil
}

func (s *Store) createStatement(table string) (string, error) {
	c := dialectColumnTypes[s.dialectName]
	t := s.tables

	switch table {
	case t.Commodity:
		return fmt.Sprintf(
			"CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s, %s %s, %s %s)",
			table,
			entity.ColID, c.serialKey,
			entity.ColTitle, c.shortText,
			entity.ColPrice, c.integer,
			entity.ColDescription, c.longText,
			entity.ColUpdatedAt, c.timestamp,
			entity.ColCreatedAt, c.timestamp,
		), nil

	case t.Consumer:
		return fmt.Sprintf(
			"CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s)",
			table,
			entity.ColID, c.serialKey,
			entity.ColName, c.shortText,
			entity.ColUpdatedAt, c.timestamp,
			entity.ColCreatedAt, c.timestamp,
		), nil

	case t.Inventory:
		return fmt.Sprintf(
			"CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s)",
			table,
			entity.ColCommodityID, c.key,
			entity.ColInventory, c.integer,
			entity.ColUpdatedAt, c.timestamp,
			entity.ColCreatedAt, c.timestamp,
		), nil

	case t.Order:
		return fmt.Sprintf(
			"CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s, %s %s, %s %s)",
			table,
			entity.ColID, c.serialKey,
			entity.ColConsumerID, c.integer,
			entity.ColCommodityID, c.integer,
			entity.ColSoldUnitPrice, c.integer,
			entity.ColSoldNumber, c.integer,
			entity.ColCreatedAt, c.timestamp,
		), nil

	case t.Evaluation:
		return fmt.Sprintf(
			"CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s, %s %s, %s %s)",
			table,
			entity.ColID, c.serialKey,
			entity.ColConsumerID, c.integer,
			entity.ColCommodityID, c.integer,
			entity.ColEvaluation, c.longText,
			entity.ColUpdatedAt, c.timestamp,
			entity.ColCreatedAt, c.timestamp,
		), nil

	default:
		return "", fmt.Errorf("%w: unknown table %q", ErrSchemaFailed, table)
	}
}

func (s *Store) execDDL(ctx context.Context, statement string) error {
	s.logDebug(logMsgSQLExecuted, logAttrQuery, statement)

	if _, err := s.db.Exec(ctx, statement); err != nil {
		s.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, statement)
		return errors.Join(ErrSchemaFailed, err)
	}

	return nil
}

func (s *Store) execDDLInTx(ctx context.Context, statements ...string) error {
	_, err := s.InTx(ctx, func(tx *Tx) (uint32, error) {
		for _, statement := range statements {
			if _, err := tx.exec(ctx, statement); err != nil {
				return 0, errors.Join(ErrSchemaFailed, err)
			}
		}

		return 0, nil
	})

	return err
}
