package sqlite

// Esquema local. Cantidades y porcentajes son REAL y se leen con
// shopspring/decimal. Los timestamps son texto en formato SQLite
// (CURRENT_TIMESTAMP).
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('admin', 'operator', 'verificador')),
	full_name TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	failed_login_attempts INTEGER NOT NULL DEFAULT 0,
	locked_until DATETIME,
	last_login DATETIME,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_sessions (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	expires_at DATETIME NOT NULL,
	ip_address TEXT,
	user_agent TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS digital_signatures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	public_key TEXT NOT NULL,
	private_key_encrypted TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	presentation TEXT,
	description TEXT,
	unit TEXT NOT NULL DEFAULT 'UNIDADES',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_by INTEGER REFERENCES users(id),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS raw_materials (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	unit TEXT NOT NULL DEFAULT 'KG',
	stock REAL NOT NULL DEFAULT 0,
	min_stock REAL NOT NULL DEFAULT 0,
	max_stock REAL NOT NULL DEFAULT 0,
	unit_price REAL NOT NULL DEFAULT 0,
	supplier TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_by INTEGER REFERENCES users(id),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS product_formulation (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id INTEGER NOT NULL REFERENCES products(id),
	raw_material_id INTEGER NOT NULL REFERENCES raw_materials(id),
	item_number INTEGER NOT NULL,
	percentage REAL NOT NULL DEFAULT 0,
	UNIQUE (product_id, item_number)
);

CREATE TABLE IF NOT EXISTS packaging_materials (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	unit TEXT NOT NULL DEFAULT 'UNIDADES',
	stock REAL NOT NULL DEFAULT 0,
	is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_number TEXT UNIQUE NOT NULL,
	operator_id INTEGER NOT NULL REFERENCES users(id),
	product_name TEXT NOT NULL,
	quantity REAL NOT NULL,
	production_date TEXT NOT NULL,
	form_data TEXT NOT NULL,
	data_hash TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'draft'
		CHECK (status IN ('draft', 'signed', 'approved', 'rejected')),
	verificador_id INTEGER REFERENCES users(id),
	signed_at DATETIME,
	verified_at DATETIME,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS batch_formulation (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	record_id INTEGER NOT NULL REFERENCES records(id),
	raw_material_id INTEGER NOT NULL REFERENCES raw_materials(id),
	item_number INTEGER NOT NULL,
	percentage REAL NOT NULL DEFAULT 0,
	theoretical_quantity REAL NOT NULL DEFAULT 0,
	actual_quantity REAL,
	lot_number TEXT,
	dispensed_by TEXT
);

CREATE TABLE IF NOT EXISTS record_signatures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	record_id INTEGER NOT NULL REFERENCES records(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	signature_data TEXT NOT NULL,
	signature_type TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS stock_movements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	material_type TEXT NOT NULL CHECK (material_type IN ('RAW_MATERIAL', 'PACKAGING')),
	material_id INTEGER NOT NULL,
	movement_type TEXT NOT NULL CHECK (movement_type IN ('IN', 'OUT')),
	quantity REAL NOT NULL,
	reference_type TEXT,
	reference_id INTEGER,
	created_by INTEGER REFERENCES users(id),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS audit_trail (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER,
	record_id INTEGER,
	action TEXT NOT NULL,
	details TEXT,
	ip_address TEXT,
	user_agent TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notifications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER REFERENCES users(id),
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT 'info',
	is_read INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS system_settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_operator ON records(operator_id);
CREATE INDEX IF NOT EXISTS idx_records_status ON records(status);
CREATE INDEX IF NOT EXISTS idx_batch_formulation_record ON batch_formulation(record_id);
CREATE INDEX IF NOT EXISTS idx_stock_movements_material ON stock_movements(material_type, material_id);
CREATE INDEX IF NOT EXISTS idx_audit_trail_record ON audit_trail(record_id);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);
`
