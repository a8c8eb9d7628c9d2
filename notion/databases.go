package notion

import (
	"context"
	"fmt"
	"net/http"
)

// GetDatabase fetches a database container with its data source list.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// SetDatabaseTrash moves a database to or from the trash.
func (c *Client) SetDatabaseTrash(ctx context.Context, databaseID string, inTrash bool) (*Database, error) {
	var db Database
	body := map[string]any{"in_trash": inTrash}
	if err := c.do(ctx, http.MethodPatch, "/databases/"+databaseID, nil, body, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// GetDataSource fetches a data source and its schema.
func (c *Client) GetDataSource(ctx context.Context, dataSourceID string) (*DataSource, error) {
	var ds DataSource
	if err := c.do(ctx, http.MethodGet, "/data_sources/"+dataSourceID, nil, nil, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// PrimaryDataSource returns the first data source of a database.
func (c *Client) PrimaryDataSource(ctx context.Context, databaseID string) (*Database, *DataSource, error) {
	db, err := c.GetDatabase(ctx, databaseID)
	if err != nil {
		return nil, nil, err
	}
	if len(db.DataSources) == 0 {
		return db, nil, fmt.Errorf("database %s has no data sources", databaseID)
	}
	ds, err := c.GetDataSource(ctx, db.DataSources[0].ID)
	if err != nil {
		return db, nil, err
	}
	return db, ds, nil
}

// UpdateDataSource changes schema entries. A nil value removes the property.
func (c *Client) UpdateDataSource(ctx context.Context, dataSourceID string, properties map[string]any) (*DataSource, error) {
	var ds DataSource
	body := map[string]any{"properties": properties}
	if err := c.do(ctx, http.MethodPatch, "/data_sources/"+dataSourceID, nil, body, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// QueryDataSource runs one page of a filtered, sorted query.
func (c *Client) QueryDataSource(ctx context.Context, dataSourceID string, req QueryRequest) (*List[Page], error) {
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 100
	}
	var list List[Page]
	path := fmt.Sprintf("/data_sources/%s/query", dataSourceID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
