package migrate

// Units is the storefront schema in application order.  Append new units;
// never edit or reorder applied ones.
var Units = []Unit{
	SQL("001_admin_profiles", `CREATE TABLE IF NOT EXISTS admin_profiles (
  id CHAR(36) PRIMARY KEY,
  email VARCHAR(255) NOT NULL UNIQUE,
  password_hash VARCHAR(255) NOT NULL,
  full_name VARCHAR(255) NOT NULL DEFAULT '',
  avatar_url VARCHAR(500) DEFAULT '',
  role ENUM('super_admin', 'admin', 'editor') DEFAULT 'admin',
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`),
	SQL("002_products", `CREATE TABLE IF NOT EXISTS products (
  id CHAR(36) PRIMARY KEY,
  slug VARCHAR(255) NOT NULL UNIQUE,
  category VARCHAR(100) NOT NULL DEFAULT 'ecommerce',
  price_bdt DECIMAL(12, 2) NOT NULL DEFAULT 0,
  price_usd DECIMAL(12, 2) NOT NULL DEFAULT 0,
  thumbnail VARCHAR(500) DEFAULT '',
  images JSON DEFAULT NULL,
  video_url VARCHAR(500) DEFAULT NULL,
  demo JSON DEFAULT NULL,
  name JSON NOT NULL,
  short_description JSON DEFAULT NULL,
  features JSON DEFAULT NULL,
  facilities JSON DEFAULT NULL,
  faq JSON DEFAULT NULL,
  seo JSON DEFAULT NULL,
  is_featured TINYINT(1) DEFAULT 0,
  is_active TINYINT(1) DEFAULT 1,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  INDEX idx_slug (slug),
  INDEX idx_category (category),
  INDEX idx_is_active (is_active),
  INDEX idx_is_featured (is_featured)
)`),
	SQL("003_orders", `CREATE TABLE IF NOT EXISTS orders (
  id CHAR(36) PRIMARY KEY,
  order_id VARCHAR(50) NOT NULL UNIQUE,
  product_id CHAR(36) DEFAULT NULL,
  customer_name VARCHAR(255) NOT NULL,
  customer_email VARCHAR(255) NOT NULL,
  customer_phone VARCHAR(50) NOT NULL,
  company VARCHAR(255) DEFAULT '',
  needs_hosting TINYINT(1) DEFAULT 0,
  notes TEXT DEFAULT NULL,
  payment_method VARCHAR(100) NOT NULL DEFAULT 'bkash',
  status ENUM('pending', 'confirmed', 'processing', 'completed', 'cancelled') DEFAULT 'pending',
  total_bdt DECIMAL(12, 2) NOT NULL DEFAULT 0,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  INDEX idx_order_id (order_id),
  INDEX idx_status (status),
  INDEX idx_product_id (product_id)
)`),
	SQL("004_testimonials", `CREATE TABLE IF NOT EXISTS testimonials (
  id CHAR(36) PRIMARY KEY,
  name JSON NOT NULL,
  role JSON NOT NULL,
  content JSON NOT NULL,
  rating INT DEFAULT 5,
  avatar VARCHAR(500) DEFAULT '',
  is_active TINYINT(1) DEFAULT 1,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  INDEX idx_is_active (is_active)
)`),
	SQL("005_contact_messages", `CREATE TABLE IF NOT EXISTS contact_messages (
  id CHAR(36) PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  email VARCHAR(255) NOT NULL,
  subject VARCHAR(500) NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  is_read TINYINT(1) DEFAULT 0,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  INDEX idx_is_read (is_read)
)`),
}
