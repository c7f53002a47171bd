package browser

// elementStylesJS returns the computed typography of every element whose
// text content is not blank. Text is trimmed but not cut; the sample length
// is applied by fontusage.Aggregate.
const elementStylesJS = `() => {
	const out = [];
	for (const el of document.querySelectorAll('*')) {
		const text = (el.textContent || '').trim();
		if (text.length === 0) {
			continue;
		}
		const cs = window.getComputedStyle(el);
		out.push({
			tagName: el.tagName.toLowerCase(),
			text: text,
			fontFamily: cs.fontFamily,
			fontSize: cs.fontSize,
			fontWeight: cs.fontWeight,
			fontStyle: cs.fontStyle,
			lineHeight: cs.lineHeight,
			letterSpacing: cs.letterSpacing,
			textTransform: cs.textTransform,
			color: cs.color,
		});
	}
	return out;
}`

// styleSheetsJS dumps the top-level rules of every stylesheet. Reading the
// rules of a cross-origin sheet throws; such sheets are reported as
// inaccessible instead.
const styleSheetsJS = `() => {
	const out = [];
	for (const sheet of Array.from(document.styleSheets)) {
		const dump = { href: sheet.href || '', accessible: true, rules: [] };
		try {
			for (const rule of Array.from(sheet.cssRules || [])) {
				if (rule instanceof CSSFontFaceRule) {
					const s = rule.style;
					dump.rules.push({
						type: 'font-face',
						cssText: rule.cssText,
						face: {
							fontFamily: s.fontFamily || '',
							fontStyle: s.fontStyle || '',
							fontWeight: s.fontWeight || '',
							fontStretch: s.fontStretch || '',
							fontDisplay: s.fontDisplay || '',
							unicodeRange: s.unicodeRange || '',
							src: s.src || '',
							fontVariationSettings: s.fontVariationSettings || '',
						},
					});
				} else if (rule instanceof CSSImportRule) {
					dump.rules.push({
						type: 'import',
						cssText: rule.cssText,
						importHref: rule.href,
						media: rule.media ? rule.media.mediaText : '',
					});
				} else {
					dump.rules.push({ type: 'other', cssText: rule.cssText });
				}
			}
		} catch (e) {
			dump.accessible = false;
			dump.error = String(e && e.message || e);
			dump.rules = [];
		}
		out.push(dump);
	}
	return out;
}`

// fontChecksJS asks document.fonts about every non-generic family used by
// the page, once per weight and style. The weight is passed as the sample
// text argument of check, so the answer is the same for every check of a
// family.
const fontChecksJS = `(weights, styles) => {
	if (!document.fonts || !document.fonts.check) {
		return [];
	}
	const generic = ['inherit', 'initial', 'unset', 'serif', 'sans-serif', 'monospace', 'cursive', 'fantasy'];
	const families = new Set();
	for (const el of document.querySelectorAll('*')) {
		for (const f of window.getComputedStyle(el).fontFamily.split(',')) {
			const clean = f.trim().replace(/['"]/g, '');
			if (clean && !generic.includes(clean)) {
				families.add(clean);
			}
		}
	}
	const out = [];
	for (const family of families) {
		for (const weight of weights) {
			for (const style of styles) {
				let loaded = false;
				try {
					loaded = document.fonts.check('12px "' + family + '"', weight);
				} catch (e) {}
				out.push({ family, weight, style, loaded });
			}
		}
	}
	return out;
}`

const fontsReadyJS = `() => document.fonts ? document.fonts.ready.then(() => true) : true`

const scrollJS = `(delay) => {
	window.scrollTo(0, document.body ? document.body.scrollHeight : 0);
	return new Promise(resolve => setTimeout(resolve, delay));
}`
