package binding

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	"github.com/kvbench/kvbench"
)

const (
	PropertyMysqlHost            = "mysql.host"
	PropertyMysqlHostDefault     = "127.0.0.1"
	PropertyMysqlPort            = "mysql.port"
	PropertyMysqlPortDefault     = "3306"
	PropertyMysqlDatabase        = "mysql.db"
	PropertyMysqlDatabaseDefault = "db"
	PropertyMysqlUser            = "mysql.user"
	PropertyMysqlUserDefault     = "user"
	PropertyMysqlPassword        = "mysql.password"
	PropertyMysqlPasswordDefault = "password"
	PropertyMysqlOptions         = "mysql.options"
	PropertyMysqlOptionsDefault  = "charset=utf8"
)

// MysqlDB stores each record as a single row of (k, v) where v is the
// record packed with the shared field codec. The table must exist:
//
//	CREATE TABLE usertable (k VARCHAR(255) PRIMARY KEY, v BLOB)
type MysqlDB struct {
	*kvbench.DBBase
	table string
	db    *sql.DB
}

func NewMysqlDB() *MysqlDB {
	return &MysqlDB{
		DBBase: kvbench.NewDBBase(),
	}
}

func (self *MysqlDB) Init() error {
	props := self.GetProperties()
	host := props.GetDefault(PropertyMysqlHost, PropertyMysqlHostDefault)
	portStr := props.GetDefault(PropertyMysqlPort, PropertyMysqlPortDefault)
	port, err := strconv.ParseInt(portStr, 0, 32)
	if err != nil {
		return err
	}
	database := props.GetDefault(PropertyMysqlDatabase, PropertyMysqlDatabaseDefault)
	user := props.GetDefault(PropertyMysqlUser, PropertyMysqlUserDefault)
	password := props.GetDefault(PropertyMysqlPassword, PropertyMysqlPasswordDefault)
	options := props.GetDefault(PropertyMysqlOptions, PropertyMysqlOptionsDefault)
	self.table = props.GetDefault(kvbench.PropertyTableName, kvbench.PropertyTableNameDefault)
	sourceName := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", user, password, host, port, database, options)
	db, err := sql.Open("mysql", sourceName)
	if err != nil {
		return err
	}
	self.db = db
	return nil
}

func (self *MysqlDB) Cleanup() error {
	if self.db != nil {
		err := self.db.Close()
		self.db = nil
		return err
	}
	return nil
}

func (self *MysqlDB) Read(key string) (kvbench.Fields, kvbench.StatusType) {
	statement := fmt.Sprintf("SELECT v FROM %s WHERE k = ?", self.table)
	var value []byte
	err := self.db.QueryRow(statement, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, kvbench.StatusNotFound
		}
		return nil, kvbench.StatusError
	}
	return kvbench.DeserializeFields(value), kvbench.StatusOK
}

func (self *MysqlDB) Scan(startKey string, recordCount int64) ([]kvbench.Fields, kvbench.StatusType) {
	statement := fmt.Sprintf("SELECT v FROM %s WHERE k >= ? ORDER BY k LIMIT ?", self.table)
	rows, err := self.db.Query(statement, startKey, recordCount)
	if err != nil {
		return nil, kvbench.StatusError
	}
	defer rows.Close()
	ret := make([]kvbench.Fields, 0, recordCount)
	for rows.Next() {
		var value []byte
		if err = rows.Scan(&value); err != nil {
			return nil, kvbench.StatusError
		}
		ret = append(ret, kvbench.DeserializeFields(value))
	}
	if err = rows.Err(); err != nil {
		return nil, kvbench.StatusError
	}
	return ret, kvbench.StatusOK
}

func (self *MysqlDB) Update(key string, values kvbench.Fields) kvbench.StatusType {
	statement := fmt.Sprintf("REPLACE INTO %s (k, v) VALUES(?, ?)", self.table)
	_, err := self.db.Exec(statement, key, kvbench.SerializeFields(values))
	if err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}

func (self *MysqlDB) Insert(key string, values kvbench.Fields) kvbench.StatusType {
	return self.Update(key, values)
}

func (self *MysqlDB) Delete(key string) kvbench.StatusType {
	statement := fmt.Sprintf("DELETE FROM %s WHERE k = ?", self.table)
	_, err := self.db.Exec(statement, key)
	if err != nil {
		return kvbench.StatusError
	}
	return kvbench.StatusOK
}

func (self *MysqlDB) ReadModifyWrite(key string, values kvbench.Fields) kvbench.StatusType {
	fields, status := self.Read(key)
	switch status {
	case kvbench.StatusOK:
	case kvbench.StatusNotFound:
		fields = make(kvbench.Fields)
	default:
		return status
	}
	for k, v := range values {
		fields[k] = v
	}
	return self.Update(key, fields)
}
